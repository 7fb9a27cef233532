package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/holosim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var seriesHeader = []string{"step", "t", "x", "y", "z", "fx", "fy", "fz"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Mass       float64            `json:"mass"`
	Wavelength float64            `json:"wavelength"`
	WaveSpeed  float64            `json:"wave_speed"`
	ForceScale float64            `json:"force_scale"`
	Coupling   float64            `json:"coupling"`
	InitialPos dynamo.Vec3        `json:"initial_pos"`
	InitialVel dynamo.Vec3        `json:"initial_vel"`
	Steps      int                `json:"steps"`
	Final      dynamo.State       `json:"final"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Series is the stored per-step data of a run.
type Series struct {
	Times      []float64
	Trajectory []dynamo.Vec3
	Forces     []dynamo.Vec3
}

func newRunID(now time.Time) string {
	return fmt.Sprintf("holo_%d_%s", now.Unix(), uuid.NewString()[:8])
}

// Save writes metadata.json and series.csv under a fresh run directory and
// returns the run id. ID, Timestamp, Steps, Final and Metrics in meta are
// filled from the result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	meta.ID = newRunID(now)
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Final = result.Final
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, seriesFile), func(w io.Writer) error {
			return WriteSeriesCSV(w, result.Times, result.Trajectory, result.Forces)
		})
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", meta.ID, err)
	}

	return meta.ID, nil
}

// writeFile creates path, fills it with fn and reports the close error.
func writeFile(path string, fn func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteSeriesCSV writes one row per step: step, t, position, force.
func WriteSeriesCSV(out io.Writer, times []float64, traj, forces []dynamo.Vec3) error {
	if len(times) != len(traj) || len(traj) != len(forces) {
		return fmt.Errorf("series length mismatch: %d times, %d positions, %d forces", len(times), len(traj), len(forces))
	}

	w := csv.NewWriter(out)
	if err := w.Write(seriesHeader); err != nil {
		return err
	}

	for i := range traj {
		row := []string{strconv.Itoa(i), formatFloat(times[i])}
		for _, v := range traj[i].Slice() {
			row = append(row, formatFloat(v))
		}
		for _, v := range forces[i].Slice() {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(seriesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	n := len(records) - 1
	series.Times = make([]float64, 0, n)
	series.Trajectory = make([]dynamo.Vec3, 0, n)
	series.Forces = make([]dynamo.Vec3, 0, n)

	for i, record := range records[1:] {
		vals := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", seriesFile, i+1, err)
			}
			vals[j] = v
		}
		series.Times = append(series.Times, vals[0])
		series.Trajectory = append(series.Trajectory, dynamo.Vec3{X: vals[1], Y: vals[2], Z: vals[3]})
		series.Forces = append(series.Forces, dynamo.Vec3{X: vals[4], Y: vals[5], Z: vals[6]})
	}

	return series, nil
}
