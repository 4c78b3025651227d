package roadmap

import (
	"fmt"

	"github.com/calebhart/gantry/internal/domain"
)

// ValidateSchema checks a decoded roadmap for structural problems before
// conversion. It returns every problem found, not just the first one.
// Unparseable dates are deliberately NOT validation errors: an absent or
// malformed endpoint is a legal state that the resolver renders
// best-effort, so validation only flags what would make the document
// meaningless.
func ValidateSchema(schema *Schema) []error {
	var errs []error

	if schema.Title == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if schema.Year < 2000 || schema.Year > 2100 {
		errs = append(errs, fmt.Errorf("year: %d is outside the plausible planning range", schema.Year))
	}
	if len(schema.Epics) == 0 {
		errs = append(errs, fmt.Errorf("at least one epic is required"))
	}

	seenEpicIDs := make(map[string]bool)
	for i, e := range schema.Epics {
		if e.Title == "" {
			errs = append(errs, fmt.Errorf("epics[%d].title is required", i))
		}
		if e.ID != "" {
			if seenEpicIDs[e.ID] {
				errs = append(errs, fmt.Errorf("epics[%d].id: duplicate id %q", i, e.ID))
			}
			seenEpicIDs[e.ID] = true
		}
		errs = append(errs, validateStories(i, e.Stories)...)
	}

	return errs
}

func validateStories(epicIdx int, stories []StoryImport) []error {
	var errs []error
	seenIDs := make(map[string]bool)
	for j, s := range stories {
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("epics[%d].stories[%d].title is required", epicIdx, j))
		}
		if s.Status != "" && !domain.ValidStoryStatuses[s.Status] {
			errs = append(errs, fmt.Errorf("epics[%d].stories[%d].status: invalid value %q", epicIdx, j, s.Status))
		}
		if s.ID != "" {
			if seenIDs[s.ID] {
				errs = append(errs, fmt.Errorf("epics[%d].stories[%d].id: duplicate id %q", epicIdx, j, s.ID))
			}
			seenIDs[s.ID] = true
		}
	}
	return errs
}
