// Package report samples the force model over a fixed grid and renders run
// series for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/holosim/internal/dynamo"
)

const (
	ForceTableFile     = "test_results.txt"
	IntensityTableFile = "intensity_results.txt"
)

var (
	DefaultPositions = []dynamo.Vec3{
		{X: 0.0, Y: 0.0, Z: 0.0},
		{X: 1e-6, Y: 1e-6, Z: 0.0},
		{X: 1e-3, Y: 1e-3, Z: 0.0},
	}
	DefaultTimes = []float64{0, 1e-3, 1e-2, 1e-1}
)

type ForceRow struct {
	Pos       dynamo.Vec3
	T         float64
	Force     dynamo.Vec3
	Magnitude float64
}

type IntensityRow struct {
	Pos       dynamo.Vec3
	T         float64
	Intensity float64
}

type Forcer interface {
	Force(pos dynamo.Vec3, t float64) dynamo.Vec3
}

type Intensifier interface {
	Intensity(pos dynamo.Vec3, t float64) float64
}

// SampleForces evaluates m at every (position, time) pair, positions in the
// outer loop.
func SampleForces(m Forcer, positions []dynamo.Vec3, times []float64) []ForceRow {
	rows := make([]ForceRow, 0, len(positions)*len(times))
	for _, p := range positions {
		for _, t := range times {
			f := m.Force(p, t)
			rows = append(rows, ForceRow{Pos: p, T: t, Force: f, Magnitude: f.Norm()})
		}
	}
	return rows
}

func SampleIntensities(f Intensifier, positions []dynamo.Vec3, times []float64) []IntensityRow {
	rows := make([]IntensityRow, 0, len(positions)*len(times))
	for _, p := range positions {
		for _, t := range times {
			rows = append(rows, IntensityRow{Pos: p, T: t, Intensity: f.Intensity(p, t)})
		}
	}
	return rows
}

func WriteForceTable(w io.Writer, rows []ForceRow) error {
	if _, err := io.WriteString(w, "Position, Time, Fx, Fy, Fz, Magnitude\n"); err != nil {
		return err
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w, "%s, %.3e, %.3e, %.3e, %.3e, %.3e\n",
			formatPosition(r.Pos), r.T, r.Force.X, r.Force.Y, r.Force.Z, r.Magnitude)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteIntensityTable(w io.Writer, rows []IntensityRow) error {
	if _, err := io.WriteString(w, "Position, Time, Intensity\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s, %.3e, %.3e\n", formatPosition(r.Pos), r.T, r.Intensity); err != nil {
			return err
		}
	}
	return nil
}

// RecordSamples samples the default grid and writes both tables into dir.
func RecordSamples(dir string, m Forcer, f Intensifier) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	forces := SampleForces(m, DefaultPositions, DefaultTimes)
	if err := writeFile(filepath.Join(dir, ForceTableFile), func(w io.Writer) error {
		return WriteForceTable(w, forces)
	}); err != nil {
		return err
	}

	intensities := SampleIntensities(f, DefaultPositions, DefaultTimes)
	return writeFile(filepath.Join(dir, IntensityTableFile), func(w io.Writer) error {
		return WriteIntensityTable(w, intensities)
	})
}

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

// formatPosition renders a position as a parenthesised tuple of shortest
// round-trip floats: (0.0, 1e-06, 0.001).
func formatPosition(p dynamo.Vec3) string {
	parts := make([]string, 0, 3)
	for _, v := range p.Slice() {
		parts = append(parts, formatTupleFloat(v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// formatTupleFloat switches to exponent form outside [1e-4, 1e16) and always
// keeps a decimal point on plain integral values.
func formatTupleFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
