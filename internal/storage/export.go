package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/accretion/internal/dynamo"
)

type ExportData struct {
	Run    RunMetadata           `json:"run"`
	Frames []dynamo.Frame        `json:"frames"`
	Events []dynamo.DestroyEvent `json:"events"`
}

// ExportJSON writes a stored run as one JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	events, err := s.LoadEvents(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Frames: frames, Events: events})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.ExportJSON(file, runID)
}
