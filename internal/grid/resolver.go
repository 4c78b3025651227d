package grid

import (
	"github.com/calebhart/gantry/internal/domain"
)

// Options carries everything ResolveSpan needs besides the two endpoints.
// All behavior flags live here explicitly; the resolver reads no ambient
// state.
type Options struct {
	// Year is the roadmap's display year. Endpoints outside it are
	// clamped to the grid edges and flagged as continuations.
	Year int

	// Months overrides the base-column table. The zero value means
	// DefaultMonthTable.
	Months MonthTable

	// RangeStart/RangeEnd optionally tighten the displayed window, e.g.
	// when rendering a search-range view. Zero values mean unbounded.
	// The effective bound is the tighter of the year boundary and the
	// range boundary.
	RangeStart domain.NormalizedDate
	RangeEnd   domain.NormalizedDate
}

func (o Options) table() MonthTable {
	if o.Months.IsZero() {
		return DefaultMonthTable()
	}
	return o.Months
}

// ResolveSpan maps a story's normalized endpoints onto grid columns.
// Either endpoint may be the zero NormalizedDate (the story's raw text did
// not parse, or the field was absent); the span is then derived from the
// other endpoint plus a default one-month width, or pinned at column 1
// when both are absent. ResolveSpan never fails: a malformed record must
// not blank the whole page.
func ResolveSpan(start, end domain.NormalizedDate, opts Options) domain.GridSpan {
	t := opts.table()

	span := domain.GridSpan{TrueStart: start, TrueEnd: end}

	haveStart := !start.IsZero()
	haveEnd := !end.IsZero()

	switch {
	case !haveStart && !haveEnd:
		span.StartColumn = 1
		span.EndColumn = 1 + MonthWidth
		return span
	case haveStart && !haveEnd:
		span.StartColumn = columnForStart(start, t)
		span.EndColumn = span.StartColumn + MonthWidth
	case !haveStart && haveEnd:
		span.EndColumn = columnForEnd(end, t)
		span.StartColumn = span.EndColumn - MonthWidth
		if span.StartColumn < 1 {
			span.StartColumn = 1
		}
	default:
		span.StartColumn = columnForStart(start, t)
		span.EndColumn = columnForEnd(end, t)
	}

	clampContinuations(&span, start, end, opts, t)

	// Zero-width spans are bumped to the minimum renderable width.
	// Genuinely inverted spans pass through untouched; the data is the
	// author's ambiguity to resolve, not ours.
	if span.EndColumn == span.StartColumn {
		span.EndColumn = span.StartColumn + 1
	}
	return span
}

// columnForStart applies the start-role day buckets:
//
//	day  1..3  -> month base (start of this month)
//	day  4..10 -> base+3, shifted 2 left for story starts -> base+1
//	day 11..20 -> base+6, shifted 2 left -> base+4
//	day 21..27 -> base+9, shifted 2 left -> base+7
//	day 28..31 -> promoted to the next month's base
//
// The -2 shift aligns bar starts with where the workweek begins rather
// than the raw bucket boundary. A bare month token starts at the base.
func columnForStart(d domain.NormalizedDate, t MonthTable) int {
	base := t.Base(d.Month)
	if d.Kind == domain.DateMonth {
		return base
	}
	switch {
	case d.Day <= 3:
		return base
	case d.Day <= 10:
		return base + 3 - 2
	case d.Day <= 20:
		return base + 6 - 2
	case d.Day <= 27:
		return base + 9 - 2
	default:
		// Late-month starts belong to the next month. base+MonthWidth is
		// the next month's base for Jan..Nov; for December it saturates
		// at the grid edge and any true spillover is reported through
		// the continuation flags, not month arithmetic.
		next := base + MonthWidth
		if next > domain.GridColumns {
			next = domain.GridColumns
		}
		return next
	}
}

// columnForEnd applies the end-role day buckets:
//
//	day  1..3  -> end of the previous month, which is this month's base
//	day  4..10 -> base+3
//	day 11..20 -> base+6
//	day 21..25 -> base+9
//	day 26..31 -> base+MonthWidth (full-month-end alignment)
//
// A bare month token spans its entire month, so it ends at base+MonthWidth.
func columnForEnd(d domain.NormalizedDate, t MonthTable) int {
	base := t.Base(d.Month)
	if d.Kind == domain.DateMonth {
		return base + MonthWidth
	}
	switch {
	case d.Day <= 3:
		return base
	case d.Day <= 10:
		return base + 3
	case d.Day <= 20:
		return base + 6
	case d.Day <= 25:
		return base + 9
	default:
		return base + MonthWidth
	}
}

// clampContinuations pins endpoints that fall outside the displayed year
// (or the tighter optional search range) to the grid edges and raises the
// matching flag. The unclamped dates stay on the span for labeling.
func clampContinuations(span *domain.GridSpan, start, end domain.NormalizedDate, opts Options, t MonthTable) {
	if !start.IsZero() && beforeLowerBound(start, opts) {
		span.StartColumn = t.Base(1)
		span.SpansPrevYear = true
	}
	if !end.IsZero() && afterUpperBound(end, opts) {
		span.EndColumn = t.Base(12) + MonthWidth
		span.SpansNextYear = true
	}
}

func beforeLowerBound(d domain.NormalizedDate, opts Options) bool {
	if d.Year < opts.Year {
		return true
	}
	if !opts.RangeStart.IsZero() && compareDates(d, opts.RangeStart) < 0 {
		return true
	}
	return false
}

func afterUpperBound(d domain.NormalizedDate, opts Options) bool {
	if d.Year > opts.Year {
		return true
	}
	if !opts.RangeEnd.IsZero() && compareDates(d, opts.RangeEnd) > 0 {
		return true
	}
	return false
}

// compareDates orders two normalized dates. Month tokens compare as the
// whole month: before any exact day of a later month, after any exact day
// of an earlier one, and by position within the same month (a token
// neither precedes nor follows an exact day of its own month).
func compareDates(a, b domain.NormalizedDate) int {
	if a.Year != b.Year {
		return sign(a.Year - b.Year)
	}
	if a.Month != b.Month {
		return sign(a.Month - b.Month)
	}
	if a.Kind == domain.DateMonth || b.Kind == domain.DateMonth {
		return 0
	}
	return sign(a.Day - b.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
