package store

import (
	"encoding/json"
	"os"
)

type exportPayload struct {
	Meta   RunMetadata `json:"meta"`
	Frames []Frame     `json:"frames"`
}

// ExportJSONStdout writes a run's metadata and frame series to stdout as
// indented JSON.
func (s *Store) ExportJSONStdout(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(exportPayload{Meta: *meta, Frames: frames})
}
