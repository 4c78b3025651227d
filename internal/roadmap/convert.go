package roadmap

import (
	"fmt"
	"time"

	"github.com/calebhart/gantry/internal/dates"
	"github.com/calebhart/gantry/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated Schema into the domain model, assigning
// UUIDs where the file carries no ids and normalizing every date string.
// Call ValidateSchema first; Convert assumes the schema is structurally
// valid. Dates that fail normalization stay zero on the story, which the
// resolver treats as absent.
func Convert(schema *Schema, sourceRef string) *domain.Roadmap {
	now := time.Now().UTC()

	rm := &domain.Roadmap{
		ID:        uuid.New().String(),
		Title:     schema.Title,
		Year:      schema.Year,
		SourceRef: sourceRef,
		LoadedAt:  now,
	}

	for _, e := range schema.Epics {
		epicID := e.ID
		if epicID == "" {
			epicID = uuid.New().String()
		}
		epic := &domain.Epic{
			ID:    epicID,
			Title: e.Title,
			Color: e.Color,
		}

		for _, s := range e.Stories {
			story := &domain.Story{
				ID:             s.ID,
				EpicID:         epicID,
				Title:          s.Title,
				Status:         domain.StoryStatus(s.Status),
				StartRaw:       s.StartRaw(),
				EndRaw:         s.EndRaw(),
				Annotations:    s.Annotations,
				TimelineChange: s.TimelineChange,
			}
			if story.ID == "" {
				story.ID = uuid.New().String()
			}
			if story.Status == "" {
				story.Status = domain.StoryPlanned
			}
			if d, ok := dates.Normalize(story.StartRaw, schema.Year); ok {
				story.Start = d
			}
			if d, ok := dates.Normalize(story.EndRaw, schema.Year); ok {
				story.End = d
			}
			epic.Stories = append(epic.Stories, story)
		}
		rm.Epics = append(rm.Epics, epic)
	}

	return rm
}

// Load reads, validates and converts a roadmap file in one step. All
// validation problems are folded into a single error.
func Load(path string) (*domain.Roadmap, error) {
	schema, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(path, errs)
	}
	return Convert(schema, path), nil
}

func formatValidationErrors(path string, errs []error) error {
	msg := fmt.Sprintf("%s: validation failed (%d errors):", path, len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
