// Package grid converts normalized story dates into column positions on
// the 120-column year grid (12 months, 10 columns per month) and lays out
// the annotation boxes that accompany story bars. Everything here is pure
// computation: no clock, no I/O, no shared state.
package grid

import "strings"

// MonthWidth is the number of grid columns each month occupies.
const MonthWidth = 10

// MonthTable maps month numbers 1..12 to their base column (the first
// column belonging to that month). Index 0 is unused.
type MonthTable [13]int

// DefaultMonthTable returns the standard table: January at column 1,
// months spaced MonthWidth apart.
func DefaultMonthTable() MonthTable {
	var t MonthTable
	for m := 1; m <= 12; m++ {
		t[m] = 1 + (m-1)*MonthWidth
	}
	return t
}

// Base returns the base column for month (1..12), or 0 for anything else.
func (t MonthTable) Base(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return t[month]
}

// IsZero reports whether the table was never initialized.
func (t MonthTable) IsZero() bool { return t[1] == 0 }

var monthNumbersByName = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// BaseByName is the lookup collaborators inject into templates: a
// three-letter upper-case month name to its base column. Unknown names
// return 0, false.
func (t MonthTable) BaseByName(name string) (int, bool) {
	m, ok := monthNumbersByName[strings.ToUpper(name)]
	if !ok {
		return 0, false
	}
	return t.Base(m), true
}
