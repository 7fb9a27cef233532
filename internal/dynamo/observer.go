package dynamo

import (
	"go.uber.org/zap"
)

// LogObserver routes per-step accelerations (debug) and periodic snapshots
// (info) to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

func NewLogObserver(log *zap.Logger) *LogObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) OnStep(r Record) {
	if ce := o.log.Check(zap.DebugLevel, "acceleration"); ce != nil {
		ce.Write(
			zap.Int("step", r.Step),
			zap.Float64("ax", r.Accel.X),
			zap.Float64("ay", r.Accel.Y),
			zap.Float64("az", r.Accel.Z),
		)
	}
}

func (o *LogObserver) OnSnapshot(s Snapshot) {
	o.log.Info("snapshot",
		zap.Int("step", s.Step),
		zap.Float64("t", s.T),
		zap.Float64("x", s.Pos.X),
		zap.Float64("y", s.Pos.Y),
		zap.Float64("z", s.Pos.Z),
		zap.Float64("vx", s.Vel.X),
		zap.Float64("vy", s.Vel.Y),
		zap.Float64("vz", s.Vel.Z),
		zap.Float64("fx", s.Force.X),
		zap.Float64("fy", s.Force.Y),
		zap.Float64("fz", s.Force.Z),
		zap.Float64("intensity", s.Intensity),
		zap.Float64("field_re", real(s.Field)),
		zap.Float64("field_im", imag(s.Field)),
	)
}

// SnapshotRecorder keeps every snapshot in memory.
type SnapshotRecorder struct {
	Snapshots []Snapshot
}

func (r *SnapshotRecorder) OnStep(Record) {}

func (r *SnapshotRecorder) OnSnapshot(s Snapshot) {
	r.Snapshots = append(r.Snapshots, s)
}
