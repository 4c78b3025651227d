package domain

import "time"

// Roadmap is one team-authored roadmap document: a display year and the
// epics rendered onto that year's grid.
type Roadmap struct {
	ID        string
	Title     string
	Year      int // display year used to resolve bare months and 2-digit years
	Epics     []*Epic
	SourceRef string // path of the JSON file this roadmap was loaded from
	LoadedAt  time.Time
}

// Epic groups stories under a shared theme and bar color.
type Epic struct {
	ID      string
	Title   string
	Color   string // hex color for the epic's story bars, optional
	Stories []*Story
}

// Story is a single bar on the timeline. StartRaw/EndRaw hold the authored
// strings exactly as written; Start/End hold the normalized values, which
// stay zero when the raw text does not parse.
type Story struct {
	ID     string
	EpicID string
	Title  string
	Status StoryStatus

	StartRaw string
	EndRaw   string
	Start    NormalizedDate
	End      NormalizedDate

	// Annotations drive the status annotation box; TimelineChange, when
	// non-empty, adds a timeline-change note box.
	Annotations    []string
	TimelineChange string
}

// HasAnnotations reports whether the story carries any secondary boxes.
func (s *Story) HasAnnotations() bool {
	return len(s.Annotations) > 0 || s.TimelineChange != ""
}

// AnnotationItems returns the combined item texts for box sizing. The
// timeline-change note counts as a single item appended after the status
// annotations.
func (s *Story) AnnotationItems() []string {
	items := make([]string, 0, len(s.Annotations)+1)
	items = append(items, s.Annotations...)
	if s.TimelineChange != "" {
		items = append(items, s.TimelineChange)
	}
	return items
}
