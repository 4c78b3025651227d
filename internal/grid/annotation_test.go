package grid

import (
	"testing"

	"github.com/calebhart/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnnotationWidth_Table(t *testing.T) {
	widths := map[int]int{
		0: 0, 1: 16, 2: 26, 3: 38, 4: 50, 5: 62, 6: 74, 7: 85,
		8: 97, 9: 109, 12: 145,
	}
	for count, want := range widths {
		assert.Equal(t, want, AnnotationWidth(count), "count %d", count)
	}
}

func TestPlaceAnnotation_SameRowWhenItFits(t *testing.T) {
	span := domain.GridSpan{StartColumn: 11, EndColumn: 31}
	p := PlaceAnnotation(span, 2, LayoutConfig{})

	assert.Equal(t, 1, p.Row)
	assert.Equal(t, 33, p.Column, "bar end + buffer")
	assert.Equal(t, 26, p.Width)
}

func TestPlaceAnnotation_FlipsBelowOnOverflow(t *testing.T) {
	// A 5-item box (width 62) after a bar ending at 115 would reach far
	// past the grid edge, so it drops to the row below at the bar's own
	// start column.
	span := domain.GridSpan{StartColumn: 41, EndColumn: 115}
	p := PlaceAnnotation(span, 5, LayoutConfig{})

	assert.Equal(t, 2, p.Row)
	assert.Equal(t, 41, p.Column)
	assert.Equal(t, 62, p.Width)
}

func TestPlaceAnnotation_SameRowUsesTighterThreshold(t *testing.T) {
	// 90 + 2 + 16 = 108 fits inside the same-row limit.
	span := domain.GridSpan{StartColumn: 71, EndColumn: 90}
	p := PlaceAnnotation(span, 1, LayoutConfig{})
	assert.Equal(t, 1, p.Row)

	// 93 + 2 + 16 = 111 is inside the hard grid edge but past the
	// same-row limit, so it still flips below.
	span.EndColumn = 93
	p = PlaceAnnotation(span, 1, LayoutConfig{})
	assert.Equal(t, 2, p.Row)
	assert.Equal(t, 71, p.Column)
}

func TestPlaceAnnotation_BelowRowShiftsLeftAtTheEdge(t *testing.T) {
	// Below-placement at column 101 with width 38 would end at 139;
	// the box shifts left by the overflow.
	span := domain.GridSpan{StartColumn: 101, EndColumn: 118}
	p := PlaceAnnotation(span, 3, LayoutConfig{})

	assert.Equal(t, 2, p.Row)
	assert.Equal(t, 82, p.Column, "101 - (139-120)")

	// A very wide box floors at column 1.
	p = PlaceAnnotation(span, 12, LayoutConfig{})
	assert.Equal(t, 1, p.Column)
}

func TestPlaceAnnotation_ForceBelow(t *testing.T) {
	span := domain.GridSpan{StartColumn: 11, EndColumn: 31}
	p := PlaceAnnotation(span, 1, LayoutConfig{ForceBelow: true})

	assert.Equal(t, 2, p.Row)
	assert.Equal(t, 11, p.Column)
}

func TestPlaceAnnotation_CustomBuffer(t *testing.T) {
	span := domain.GridSpan{StartColumn: 11, EndColumn: 31}
	p := PlaceAnnotation(span, 1, LayoutConfig{Buffer: 5})
	assert.Equal(t, 36, p.Column)
}

func TestPlaceAnnotation_NoItems(t *testing.T) {
	span := domain.GridSpan{StartColumn: 11, EndColumn: 31}
	assert.Equal(t, domain.Placement{}, PlaceAnnotation(span, 0, LayoutConfig{}))
}
