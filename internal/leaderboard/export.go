package leaderboard

import (
	"encoding/json"
	"io"
	"time"
)

// Export is the document written by WriteExport
type Export struct {
	ExportedAt time.Time `json:"exported_at"`
	Stats      Stats     `json:"stats"`
	Entries    []Entry   `json:"entries"`
}

// WriteExport writes entries and their stats to w as indented JSON
func WriteExport(w io.Writer, entries []Entry, now time.Time) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{
		ExportedAt: now.UTC(),
		Stats:      ComputeStats(entries),
		Entries:    entries,
	})
}
