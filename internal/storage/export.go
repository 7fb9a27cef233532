package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run        RunMetadata `json:"run"`
	Times      []float64   `json:"times"`
	Trajectory [][]float64 `json:"trajectory"`
	Forces     [][]float64 `json:"forces"`
}

// ExportJSON writes a stored run with its full series as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, series *Series) error {
	data := ExportData{
		Run:        *meta,
		Times:      series.Times,
		Trajectory: make([][]float64, len(series.Trajectory)),
		Forces:     make([][]float64, len(series.Forces)),
	}

	for i, p := range series.Trajectory {
		data.Trajectory[i] = p.Slice()
	}
	for i, f := range series.Forces {
		data.Forces[i] = f.Slice()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
