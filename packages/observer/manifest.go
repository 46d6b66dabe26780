package observer

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest lists the screenshots saved during one run.
type Manifest struct {
	RunID    string          `json:"runId"`
	Time     string          `json:"time"`
	Captures []ManifestEntry `json:"captures"`
}

// ManifestEntry is one saved screenshot.
type ManifestEntry struct {
	ID       string  `json:"id"`
	Path     string  `json:"path"`
	File     string  `json:"file"`
	Size     int     `json:"size"`
	Duration float64 `json:"duration"` // milliseconds
}

// Manifest builds the manifest of everything captured so far.
func (o *Observer) Manifest() Manifest {
	m := Manifest{
		RunID:    o.runID.String(),
		Time:     time.Now().Format(time.RFC3339),
		Captures: make([]ManifestEntry, 0),
	}
	for _, c := range o.Captures() {
		m.Captures = append(m.Captures, ManifestEntry{
			ID:       c.ID.String(),
			Path:     c.Path,
			File:     c.File,
			Size:     c.Size,
			Duration: float64(c.Duration.Microseconds()) / 1000,
		})
	}
	return m
}

// WriteManifest saves m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
