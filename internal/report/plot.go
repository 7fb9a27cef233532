package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/holosim/internal/dynamo"
)

var ErrNoData = errors.New("report: no data to plot")

type PlotOptions struct {
	Height int
	Width  int
	Color  bool
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Height: 10, Width: 80, Color: true}
}

// Components splits a vector series into its x, y and z series.
func Components(series []dynamo.Vec3) [][]float64 {
	out := [][]float64{
		make([]float64, len(series)),
		make([]float64, len(series)),
		make([]float64, len(series)),
	}
	for i, v := range series {
		out[0][i] = v.X
		out[1][i] = v.Y
		out[2][i] = v.Z
	}
	return out
}

func Magnitudes(series []dynamo.Vec3) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v.Norm()
	}
	return out
}

// Plot renders position vs step, force components vs step and force
// magnitude vs step.
func Plot(w io.Writer, traj, forces []dynamo.Vec3, opts PlotOptions) error {
	if len(traj) == 0 || len(forces) == 0 {
		return ErrNoData
	}

	views := []struct {
		caption string
		data    [][]float64
	}{
		{"position (m) vs step: x y z", Components(traj)},
		{"force (N) vs step: Fx Fy Fz", Components(forces)},
		{"force magnitude |F| (N) vs step", [][]float64{Magnitudes(forces)}},
	}

	for _, v := range views {
		if _, err := fmt.Fprintln(w, graph(v.data, v.caption, opts)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// PlotSeries renders a single series, used for spectra.
func PlotSeries(w io.Writer, data []float64, caption string, opts PlotOptions) error {
	if len(data) == 0 {
		return ErrNoData
	}
	_, err := fmt.Fprintln(w, graph([][]float64{data}, caption, opts))
	return err
}

func graph(data [][]float64, caption string, opts PlotOptions) string {
	options := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
	}
	if opts.Color && len(data) > 1 {
		options = append(options, asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue))
	}
	return asciigraph.PlotMany(data, options...)
}
