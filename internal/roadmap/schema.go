package roadmap

import (
	"encoding/json"
	"fmt"
	"os"
)

// Schema is the top-level JSON structure of a roadmap file.
type Schema struct {
	Title string       `json:"title"`
	Year  int          `json:"year"`
	Epics []EpicImport `json:"epics"`
}

// EpicImport defines one epic in the roadmap file.
type EpicImport struct {
	ID      string        `json:"id,omitempty"`
	Title   string        `json:"title"`
	Color   string        `json:"color,omitempty"`
	Stories []StoryImport `json:"stories"`
}

// StoryImport defines one story in the roadmap file. Date fields accept
// the loose grammars teams actually write: ISO, European day-first
// numeric, or month names with optional ordinal days. start_month and
// end_month are aliases kept for older files that separated the two
// shapes; when both a *_date and *_month field are present the *_date
// field wins.
type StoryImport struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Status         string   `json:"status,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	StartMonth     string   `json:"start_month,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	EndMonth       string   `json:"end_month,omitempty"`
	Annotations    []string `json:"annotations,omitempty"`
	TimelineChange string   `json:"timeline_change,omitempty"`
}

// StartRaw returns the effective start string for normalization.
func (s StoryImport) StartRaw() string {
	if s.StartDate != "" {
		return s.StartDate
	}
	return s.StartMonth
}

// EndRaw returns the effective end string for normalization.
func (s StoryImport) EndRaw() string {
	if s.EndDate != "" {
		return s.EndDate
	}
	return s.EndMonth
}

// ParseFile reads and decodes a roadmap JSON file without validating it.
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roadmap file: %w", err)
	}
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing roadmap file %s: %w", path, err)
	}
	return &schema, nil
}
