package grid

import "github.com/calebhart/gantry/internal/domain"

// SameRowLimit is the tighter right-edge threshold used when deciding
// whether an annotation box still fits on the story's own row; it leaves
// a margin inside the hard grid edge.
const SameRowLimit = 109

// DefaultAnnotationBuffer is the gap, in columns, between a story bar's
// end and an annotation box placed on the same row.
const DefaultAnnotationBuffer = 2

// LayoutConfig carries the annotation layout knobs. ForceBelow moves every
// box to the overflow row regardless of fit, for callers that want a
// denser, uniform layout. It is explicit configuration, never ambient
// state.
type LayoutConfig struct {
	ForceBelow bool
	Buffer     int // 0 means DefaultAnnotationBuffer
}

func (c LayoutConfig) buffer() int {
	if c.Buffer == 0 {
		return DefaultAnnotationBuffer
	}
	return c.Buffer
}

// AnnotationWidth returns the box width in columns for the given item
// count. Boxes are fixed-size per count rather than measured from text,
// so this is a lookup, not a computation over the strings.
func AnnotationWidth(itemCount int) int {
	switch itemCount {
	case 0:
		return 0
	case 1:
		return 16
	case 2:
		return 26
	case 3:
		return 38
	case 4:
		return 50
	case 5:
		return 62
	case 6:
		return 74
	case 7:
		return 85
	}
	return 85 + 12*(itemCount-7)
}

// PlaceAnnotation positions a box of itemCount items relative to span.
// Preference order: same row to the right of the bar when it fits inside
// SameRowLimit; otherwise the row below, left-aligned with the bar's own
// start; and if even that would cross the hard grid edge, the box is
// shifted left by the overflow, floored at column 1.
func PlaceAnnotation(span domain.GridSpan, itemCount int, cfg LayoutConfig) domain.Placement {
	width := AnnotationWidth(itemCount)
	if width == 0 {
		return domain.Placement{}
	}
	buf := cfg.buffer()

	if !cfg.ForceBelow && span.EndColumn+buf+width <= SameRowLimit {
		return domain.Placement{Row: 1, Column: span.EndColumn + buf, Width: width}
	}

	col := span.StartColumn
	if overflow := col + width - domain.GridColumns; overflow > 0 {
		col -= overflow
		if col < 1 {
			col = 1
		}
	}
	return domain.Placement{Row: 2, Column: col, Width: width}
}
