package models

import "time"

// SkippedFile records a file whose extraction failed and was skipped
type SkippedFile struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// LoadResult summarizes one directory load
type LoadResult struct {
	RunID      string        `json:"run_id" yaml:"run_id"`         // Unique ID of this load
	Root       string        `json:"root" yaml:"root"`             // Directory that was searched
	Pattern    string        `json:"pattern" yaml:"pattern"`       // Effective glob pattern
	Candidates int           `json:"candidates" yaml:"candidates"` // Files that passed discovery filters
	Loaded     int           `json:"loaded" yaml:"loaded"`         // Files extracted successfully
	Skipped    []SkippedFile `json:"skipped" yaml:"skipped"`       // Files skipped under silent errors
	Units      int           `json:"units" yaml:"units"`           // Documents returned
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// SkippedCount returns the number of skipped files
func (r LoadResult) SkippedCount() int {
	return len(r.Skipped)
}

// HasSkipped reports whether any file was skipped
func (r LoadResult) HasSkipped() bool {
	return len(r.Skipped) > 0
}
