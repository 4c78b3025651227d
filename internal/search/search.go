// Package search scans a directory of roadmap files and finds stories
// matching a text query and an optional date window. It reuses the same
// loader and grid resolver as the generator, so a search hit carries the
// story's resolved position ready for display.
package search

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calebhart/gantry/internal/dates"
	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/grid"
	"github.com/calebhart/gantry/internal/roadmap"
)

// Query describes one search. An empty Text matches every story, which
// combined with a date window gives a "what happens between X and Y"
// view. Range bounds are optional.
type Query struct {
	Text       string
	RangeStart domain.NormalizedDate
	RangeEnd   domain.NormalizedDate
}

// Result is one matching story with its provenance and resolved span.
type Result struct {
	File      string
	Roadmap   string
	EpicTitle string
	Story     *domain.Story
	Span      domain.GridSpan
}

// Dir walks root for *.json roadmap files and returns every story
// matching q, ordered by file then start column. Files that fail to load
// are collected into warnings rather than aborting the whole search; a
// single malformed roadmap must not hide results from the others.
func Dir(root string, q Query) ([]Result, []error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, []error{fmt.Errorf("scanning %s: %w", root, err)}
	}
	sort.Strings(paths)

	var results []Result
	var warnings []error
	for _, path := range paths {
		rm, err := roadmap.Load(path)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		results = append(results, Roadmap(rm, q)...)
	}
	return results, warnings
}

// Roadmap returns the stories of a single loaded roadmap matching q.
func Roadmap(rm *domain.Roadmap, q Query) []Result {
	opts := grid.Options{
		Year:       rm.Year,
		RangeStart: q.RangeStart,
		RangeEnd:   q.RangeEnd,
	}
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	var results []Result
	for _, epic := range rm.Epics {
		for _, story := range epic.Stories {
			if !matches(epic, story, needle) {
				continue
			}
			if !inWindow(story, q) {
				continue
			}
			results = append(results, Result{
				File:      rm.SourceRef,
				Roadmap:   rm.Title,
				EpicTitle: epic.Title,
				Story:     story,
				Span:      grid.ResolveSpan(story.Start, story.End, opts),
			})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Span.StartColumn < results[j].Span.StartColumn
	})
	return results
}

func matches(epic *domain.Epic, story *domain.Story, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(story.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(epic.Title), needle) {
		return true
	}
	for _, a := range story.Annotations {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(story.TimelineChange), needle)
}

// inWindow excludes stories that lie entirely outside the query's date
// window. Month tokens are collapsed role-aware first, so a story ending
// on a bare "OCT" still overlaps a window that opens mid-October.
// Stories with no usable dates stay included: they render at the left
// edge everywhere else, and hiding them from search would make them
// unfindable.
func inWindow(story *domain.Story, q Query) bool {
	if !q.RangeStart.IsZero() && !story.End.IsZero() {
		storyEnd := dates.ExactForRole(story.End, domain.RoleEnd)
		windowStart := dates.ExactForRole(q.RangeStart, domain.RoleStart)
		if cmpDates(storyEnd, windowStart) < 0 {
			return false
		}
	}
	if !q.RangeEnd.IsZero() && !story.Start.IsZero() {
		storyStart := dates.ExactForRole(story.Start, domain.RoleStart)
		windowEnd := dates.ExactForRole(q.RangeEnd, domain.RoleEnd)
		if cmpDates(storyStart, windowEnd) > 0 {
			return false
		}
	}
	return true
}

func cmpDates(a, b domain.NormalizedDate) int {
	if a.Year != b.Year {
		return a.Year - b.Year
	}
	if a.Month != b.Month {
		return a.Month - b.Month
	}
	return a.Day - b.Day
}
