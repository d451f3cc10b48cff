package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/drape/internal/sim"
)

type ExportData struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Samples  []sim.Sample       `json:"samples"`
	Metrics  map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:       meta.ID,
		Name:     meta.Name,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    result.StepsTaken,
		Samples:  result.Samples,
		Metrics:  result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportCSV(w io.Writer, result *sim.Result) error {
	if len(result.Samples) == 0 {
		return nil
	}
	return gocsv.Marshal(&result.Samples, w)
}
