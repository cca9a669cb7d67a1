package session

import (
	"encoding/csv"
	"encoding/json"
	"io"
)

// ExportPayload is the JSON shape of an exported run.
type ExportPayload struct {
	Metadata RunMetadata `json:"metadata"`
	Frames   []Frame     `json:"frames"`
}

// ExportJSON writes a run as indented JSON. Pass os.Stdout to print it.
func ExportJSON(w io.Writer, meta RunMetadata, frames []Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportPayload{Metadata: meta, Frames: frames})
}

// ExportCSV writes the frame table in the same layout Save uses on disk.
func ExportCSV(w io.Writer, frames []Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(frameHeader); err != nil {
		return err
	}
	for _, f := range frames {
		if err := cw.Write(frameRow(f)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
