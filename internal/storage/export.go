package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/sim"
)

type ExportData struct {
	Gravity     string             `json:"gravity"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Bodies      []string           `json:"bodies"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes an indented JSON document of the run to w.
func ExportJSON(w io.Writer, gravity string, dt, duration float64, result *sim.Result) error {
	data := ExportData{
		Gravity:     gravity,
		Dt:          dt,
		Duration:    duration,
		Steps:       result.StepsTaken,
		Bodies:      result.Names,
		Times:       result.Times,
		States:      result.States,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
