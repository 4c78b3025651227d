package render

import (
	"fmt"
	"sort"

	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/grid"
)

// Options carries the per-render behavior flags. Everything is explicit;
// nothing is read from environment or globals at render time.
type Options struct {
	// ForceAnnotationsBelow pushes every annotation box to the overflow
	// row for a denser, uniform layout.
	ForceAnnotationsBelow bool

	// SortByDate orders each epic's stories by resolved start column
	// instead of file order.
	SortByDate bool

	// RangeStart/RangeEnd optionally restrict the displayed window; they
	// feed the resolver's search-range bounds.
	RangeStart domain.NormalizedDate
	RangeEnd   domain.NormalizedDate

	// Months overrides the base-column table; zero means the default.
	Months grid.MonthTable
}

// Page is the fully positioned view model handed to the HTML template.
type Page struct {
	Title  string
	Year   int
	Months []MonthHeader
	Epics  []EpicView
}

// MonthHeader is one cell of the month header row.
type MonthHeader struct {
	Label       string
	StartColumn int
	EndColumn   int
}

// EpicView is one epic section with its positioned stories.
type EpicView struct {
	Title   string
	Color   string
	Stories []StoryView
}

// StoryView is a positioned story bar plus its optional annotation box
// and continuation labels.
type StoryView struct {
	Title       string
	Status      domain.StoryStatus
	StartColumn int
	EndColumn   int

	// Rows is 1 for a bare bar, 2 when the annotation dropped below.
	Rows int

	Annotation     *AnnotationView
	ContinuesLeft  string // e.g. "starts Aug 2024", empty when none
	ContinuesRight string // e.g. "continues into 2026"
}

// AnnotationView is a positioned annotation box.
type AnnotationView struct {
	Items  []string
	Row    int
	Column int
	Width  int
}

var monthLabels = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// BuildPage resolves every story of the roadmap onto the grid and
// assembles the view model. It never fails: stories with unusable dates
// render at the left edge with a default width.
func BuildPage(rm *domain.Roadmap, opts Options) Page {
	resolverOpts := grid.Options{
		Year:       rm.Year,
		Months:     opts.Months,
		RangeStart: opts.RangeStart,
		RangeEnd:   opts.RangeEnd,
	}
	layout := grid.LayoutConfig{ForceBelow: opts.ForceAnnotationsBelow}
	table := resolverOpts.Months
	if table.IsZero() {
		table = grid.DefaultMonthTable()
	}

	page := Page{Title: rm.Title, Year: rm.Year}
	for m := 1; m <= 12; m++ {
		page.Months = append(page.Months, MonthHeader{
			Label:       monthLabels[m-1],
			StartColumn: table.Base(m),
			EndColumn:   table.Base(m) + grid.MonthWidth,
		})
	}

	for _, epic := range rm.Epics {
		ev := EpicView{Title: epic.Title, Color: epic.Color}
		for _, story := range epic.Stories {
			ev.Stories = append(ev.Stories, buildStoryView(story, resolverOpts, layout))
		}
		if opts.SortByDate {
			sort.SliceStable(ev.Stories, func(i, j int) bool {
				return ev.Stories[i].StartColumn < ev.Stories[j].StartColumn
			})
		}
		page.Epics = append(page.Epics, ev)
	}
	return page
}

func buildStoryView(story *domain.Story, opts grid.Options, layout grid.LayoutConfig) StoryView {
	span := grid.ResolveSpan(story.Start, story.End, opts)

	sv := StoryView{
		Title:       story.Title,
		Status:      story.Status,
		StartColumn: span.StartColumn,
		EndColumn:   span.EndColumn,
		Rows:        1,
	}

	if span.SpansPrevYear {
		sv.ContinuesLeft = fmt.Sprintf("starts %s", span.TrueStart.MonthLabel())
	}
	if span.SpansNextYear {
		sv.ContinuesRight = fmt.Sprintf("continues into %s", span.TrueEnd.MonthLabel())
	}

	if story.HasAnnotations() {
		items := story.AnnotationItems()
		p := grid.PlaceAnnotation(span, len(items), layout)
		sv.Annotation = &AnnotationView{
			Items:  items,
			Row:    p.Row,
			Column: p.Column,
			Width:  p.Width,
		}
		if p.Row == 2 {
			sv.Rows = 2
		}
	}
	return sv
}
