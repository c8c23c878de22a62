package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/fluidlab/internal/sim"
)

type ExportData struct {
	Run     RunMetadata  `json:"run"`
	Samples []sim.Sample `json:"samples"`
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []sim.Sample) error {
	data := ExportData{
		Run:     meta,
		Samples: samples,
	}
	if data.Samples == nil {
		data.Samples = []sim.Sample{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes samples with a header row.
func ExportCSV(w io.Writer, samples []sim.Sample) error {
	return gocsv.Marshal(samples, w)
}
