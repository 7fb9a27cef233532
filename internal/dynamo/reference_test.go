package dynamo_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/force"
	"github.com/san-kum/holosim/internal/integrators"
)

var _ = Describe("Holographic run", func() {
	var (
		sim *dynamo.Simulator
		cfg dynamo.Config
	)

	BeforeEach(func() {
		sim = dynamo.New(force.Default(), integrators.NewSemiImplicitEuler())
		cfg = dynamo.DefaultConfig()
	})

	Context("with the reference constants", func() {
		var (
			result   *dynamo.Result
			recorder *dynamo.SnapshotRecorder
		)

		BeforeEach(func() {
			recorder = &dynamo.SnapshotRecorder{}
			sim.AddObserver(recorder)

			var err error
			result, err = sim.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("takes exactly 10000 steps", func() {
			Expect(result.StepsTaken).To(Equal(10000))
			Expect(result.Trajectory).To(HaveLen(10000))
			Expect(result.Forces).To(HaveLen(10000))
			Expect(result.Final.Step).To(Equal(10000))
		})

		It("records the pre-increment time of the last step", func() {
			last := result.Times[len(result.Times)-1]
			Expect(last).To(BeNumerically("~", 9999*1e-3, 1e-9))
			Expect(result.Final.T).To(BeNumerically(">=", cfg.Duration))
		})

		It("advances time by dt every step", func() {
			for i := 1; i < len(result.Times); i++ {
				Expect(result.Times[i] - result.Times[i-1]).To(BeNumerically("~", cfg.Dt, 1e-12))
			}
		})

		It("stays at rest because the force vanishes at the origin", func() {
			for i := range result.Forces {
				Expect(result.Forces[i]).To(Equal(dynamo.Vec3{}))
				Expect(result.Trajectory[i]).To(Equal(dynamo.Vec3{}))
			}
		})

		It("emits a snapshot every 1000 steps", func() {
			Expect(recorder.Snapshots).To(HaveLen(10))
			for i, s := range recorder.Snapshots {
				Expect(s.Step).To(Equal(i * 1000))
				Expect(s.Intensity).To(BeNumerically("~", 1.0, 1e-12))
			}
		})
	})

	Context("displaced from the origin", func() {
		BeforeEach(func() {
			cfg.Duration = 0.5
			cfg.InitialPos = dynamo.Vec3{X: 0.3, Y: -0.2, Z: 1.1}
		})

		It("is deterministic", func() {
			a, err := sim.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Trajectory).To(Equal(b.Trajectory))
			Expect(a.Forces).To(Equal(b.Forces))
		})

		It("evaluates the force before updating the state", func() {
			result, err := sim.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())

			p := cfg.InitialPos
			want := dynamo.Vec3{X: 1e4 * math.Sin(p.X), Y: 1e4 * math.Sin(p.Y), Z: 1e4 * math.Sin(p.Z)}
			Expect(result.Forces[0].X).To(BeNumerically("~", want.X, 1e-8))
			Expect(result.Forces[0].Y).To(BeNumerically("~", want.Y, 1e-8))
			Expect(result.Forces[0].Z).To(BeNumerically("~", want.Z, 1e-8))

			// semi-implicit: x1 = x0 + (a*dt)*dt
			a := result.Forces[0].Scale(1 / cfg.Mass)
			x1 := p.X + a.X*cfg.Dt*cfg.Dt
			Expect(result.Trajectory[0].X).To(BeNumerically("~", x1, 1e-12))
		})

		It("differs from explicit Euler", func() {
			semi, err := sim.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())

			explicit, err := dynamo.New(force.Default(), integrators.NewExplicitEuler()).Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(explicit.Trajectory[0]).To(Equal(cfg.InitialPos))
			Expect(semi.Trajectory[0]).NotTo(Equal(explicit.Trajectory[0]))
		})
	})

	It("rejects a non-positive step", func() {
		cfg.Dt = 0
		_, err := sim.Run(context.Background(), cfg)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})
