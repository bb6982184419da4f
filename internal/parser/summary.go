package parser

import (
	"crypto/sha256"
	"encoding/base64"

	"git.lost.host/meutraa/chunichart/internal/game"
)

// Summary is the dialect-independent view of a decoded chart.
type Summary struct {
	Path       string         `json:"path,omitempty"`
	Format     Format         `json:"format"`
	Sum        string         `json:"sum"`
	Title      string         `json:"title"`
	Artist     string         `json:"artist,omitempty"`
	Level      string         `json:"level,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Notes      int            `json:"notes"`
	Air        int            `json:"air"`
	Long       int            `json:"long"`
	Kinds      map[string]int `json:"kinds"`
	Bpms       []game.Bpm     `json:"bpms"`
	// Bpm is the tempo at the start of the chart.
	Bpm      float64  `json:"bpm"`
	Warnings []string `json:"warnings,omitempty"`
	// Chart is the dialect's own chart value.
	Chart interface{} `json:"chart"`
}

func newSummary(format Format, data string, chart interface{}) *Summary {
	return &Summary{
		Format: format,
		Sum:    Sum(data),
		Kinds:  map[string]int{},
		Chart:  chart,
	}
}

func (s *Summary) count(kind game.NoteKind) {
	s.Notes++
	s.Kinds[kind.String()]++
	if kind.IsAir() {
		s.Air++
	}
	if kind.IsLong() {
		s.Long++
	}
}

func (s *Summary) setBpms(bpms []game.Bpm, fallback float64) {
	s.Bpms = bpms
	s.Bpm = fallback
	if bpm, ok := game.TempoAt(bpms, 0, 0); ok {
		s.Bpm = bpm
	}
}

// Sum identifies chart text in the catalog.
func Sum(data string) string {
	sum := sha256.Sum256([]byte(data))
	return base64.StdEncoding.EncodeToString(sum[:])
}
