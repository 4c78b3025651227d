package domain

import "fmt"

// DateKind discriminates the two shapes a normalized date can take.
type DateKind string

const (
	// DateExact is a specific calendar day.
	DateExact DateKind = "exact"
	// DateMonth is a bare month token covering the whole month.
	DateMonth DateKind = "month"
)

// NormalizedDate is the canonical output of date normalization: either an
// exact calendar date (Kind == DateExact, Day set) or a bare month token
// (Kind == DateMonth, Day zero). All values are wall-clock and
// timezone-naive.
type NormalizedDate struct {
	Kind  DateKind
	Year  int
	Month int // 1..12
	Day   int // 1..31 for DateExact, 0 for DateMonth
}

// ExactDate builds a DateExact value. The caller is responsible for
// calendar validity; normalization only ever constructs valid dates.
func ExactDate(year, month, day int) NormalizedDate {
	return NormalizedDate{Kind: DateExact, Year: year, Month: month, Day: day}
}

// MonthToken builds a DateMonth value for the given month within year.
func MonthToken(year, month int) NormalizedDate {
	return NormalizedDate{Kind: DateMonth, Year: year, Month: month}
}

// IsZero reports whether the date is the absent value. Absence is a
// first-class state: optional endpoints that fail normalization stay zero.
func (d NormalizedDate) IsZero() bool {
	return d.Kind == "" && d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String renders the date for labels: "2025-08-03" or "Aug 2025".
func (d NormalizedDate) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Kind == DateMonth {
		return fmt.Sprintf("%s %d", monthShortNames[d.Month], d.Year)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MonthLabel renders just the month and year, e.g. "Feb 2026". Used by the
// continuation indicators, which never show a day.
func (d NormalizedDate) MonthLabel() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", monthShortNames[d.Month], d.Year)
}

var monthShortNames = [13]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DaysInMonth returns the number of calendar days in the given month,
// respecting leap years for February.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
