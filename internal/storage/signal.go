package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/deepshow/internal/sim"
)

// SignalExport is one controller's simulated pressure response.
type SignalExport struct {
	Controller string             `json:"controller"`
	Target     float64            `json:"target"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Pressure   []float64          `json:"pressure"`
	Effort     []float64          `json:"effort"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewSignalExport(controller string, target float64, cfg sim.Config, result *sim.Result) SignalExport {
	return SignalExport{
		Controller: controller,
		Target:     target,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		Pressure:   result.Pressure,
		Effort:     result.Effort,
		Metrics:    result.Metrics,
	}
}

// WriteSignal encodes the exports as an indented JSON array.
func WriteSignal(w io.Writer, exports ...SignalExport) error {
	if exports == nil {
		exports = []SignalExport{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exports)
}

func ExportSignal(path string, exports ...SignalExport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSignal(file, exports...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
