package domain

// GridColumns is the width of the year grid: 12 months, 10 columns each.
const GridColumns = 120

// GridSpan is a story's resolved position on the year grid. Columns are
// 1-based; EndColumn may exceed GridColumns before clamping but the
// resolver guarantees EndColumn > StartColumn on output.
type GridSpan struct {
	StartColumn int
	EndColumn   int

	// Continuation flags mark that the true start or end lies outside the
	// displayed year (or an active search range). The unclamped dates are
	// retained so callers can label the indicator with the real month/year.
	SpansPrevYear bool
	SpansNextYear bool
	TrueStart     NormalizedDate
	TrueEnd       NormalizedDate
}

// Width returns the span's column count.
func (g GridSpan) Width() int { return g.EndColumn - g.StartColumn }

// Placement positions an annotation box relative to its story bar.
// Row 1 is the story's own row (box to the right of the bar); row 2 is
// the overflow row directly below.
type Placement struct {
	Row    int // 1 or 2
	Column int // left edge of the box, 1-based grid column
	Width  int // box width in grid columns, from the item-count table
}
