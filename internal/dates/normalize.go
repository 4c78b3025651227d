// Package dates normalizes the loosely formatted date strings found in
// team-authored roadmap files into canonical calendar dates or bare month
// tokens. All functions are pure: the roadmap's display year is always
// passed in explicitly and the wall clock is never consulted.
package dates

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/calebhart/gantry/internal/domain"
)

var (
	isoPattern      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	europeanPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2}|\d{4}))?$`)
	ordinalPattern  = regexp.MustCompile(`^(\d{1,2})(?:ST|ND|RD|TH)?$`)
)

// monthsByName maps upper-cased three-letter and full month names to 1..12.
var monthsByName = map[string]int{
	"JAN": 1, "JANUARY": 1,
	"FEB": 2, "FEBRUARY": 2,
	"MAR": 3, "MARCH": 3,
	"APR": 4, "APRIL": 4,
	"MAY": 5,
	"JUN": 6, "JUNE": 6,
	"JUL": 7, "JULY": 7,
	"AUG": 8, "AUGUST": 8,
	"SEP": 9, "SEPT": 9, "SEPTEMBER": 9,
	"OCT": 10, "OCTOBER": 10,
	"NOV": 11, "NOVEMBER": 11,
	"DEC": 12, "DECEMBER": 12,
}

// Normalize parses raw into a NormalizedDate. Grammars are tried in
// priority order: ISO, European day-first numeric, then month name with an
// optional ordinal day. A bare month name yields a month token, so both
// endpoints of a span share one parse path; callers that need an exact
// date collapse tokens afterwards with ExactForRole.
//
// The second return is false when raw matches no grammar or names an
// invalid calendar date. Absence is a valid state for optional endpoints,
// never an error.
func Normalize(raw string, roadmapYear int) (domain.NormalizedDate, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.NormalizedDate{}, false
	}

	if d, ok := parseISO(raw); ok {
		return d, true
	}
	if d, ok := parseEuropean(raw, roadmapYear); ok {
		return d, true
	}
	if d, ok := parseMonthName(raw, roadmapYear); ok {
		return d, true
	}
	return domain.NormalizedDate{}, false
}

// ExactForRole collapses a month token into the exact date its role
// implies: day 1 for a span start, the last calendar day of the month for
// a span end. Exact dates pass through unchanged. This is what makes a
// bare "AUG" start behave as Aug 1 while a bare "AUG" end behaves as
// Aug 31.
func ExactForRole(d domain.NormalizedDate, role domain.FieldRole) domain.NormalizedDate {
	if d.Kind != domain.DateMonth {
		return d
	}
	day := 1
	if role == domain.RoleEnd {
		day = domain.DaysInMonth(d.Year, d.Month)
	}
	return domain.ExactDate(d.Year, d.Month, day)
}

func parseISO(raw string) (domain.NormalizedDate, bool) {
	m := isoPattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.NormalizedDate{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if !validDate(year, month, day) {
		return domain.NormalizedDate{}, false
	}
	return domain.ExactDate(year, month, day), true
}

// parseEuropean handles D/M, D/M/YY and D/M/YYYY (also with "-"), always
// day-first. Two-digit years map to 2000+YY: roadmaps only ever describe
// near-future planning years, so no pivot-century logic. When the month
// position holds a value over 12 but the day position could be a month,
// the two are swapped once (US-style typo correction); if the swapped
// date is still invalid the parse fails rather than guessing further.
func parseEuropean(raw string, roadmapYear int) (domain.NormalizedDate, bool) {
	m := europeanPattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.NormalizedDate{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])

	year := roadmapYear
	if m[3] != "" {
		y, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			y += 2000
		}
		year = y
	}

	if month > 12 && day <= 12 {
		day, month = month, day
	}
	if !validDate(year, month, day) {
		return domain.NormalizedDate{}, false
	}
	return domain.ExactDate(year, month, day), true
}

// parseMonthName handles "AUG", "August", "AUG 8TH", "8TH AUG", "3 March"
// and similar. The day may precede or follow the month name and may carry
// an ordinal suffix. Without a day the result is a bare month token.
func parseMonthName(raw string, roadmapYear int) (domain.NormalizedDate, bool) {
	fields := strings.Fields(strings.ToUpper(raw))
	if len(fields) == 0 || len(fields) > 2 {
		return domain.NormalizedDate{}, false
	}

	month := 0
	day := 0
	for _, f := range fields {
		if m, ok := monthsByName[f]; ok && month == 0 {
			month = m
			continue
		}
		if dm := ordinalPattern.FindStringSubmatch(f); dm != nil && day == 0 {
			day, _ = strconv.Atoi(dm[1])
			continue
		}
		return domain.NormalizedDate{}, false
	}
	if month == 0 {
		return domain.NormalizedDate{}, false
	}

	if day == 0 {
		if len(fields) == 2 {
			// Two tokens but no usable day, e.g. "AUG 0".
			return domain.NormalizedDate{}, false
		}
		return domain.MonthToken(roadmapYear, month), true
	}
	if !validDate(roadmapYear, month, day) {
		return domain.NormalizedDate{}, false
	}
	return domain.ExactDate(roadmapYear, month, day), true
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= domain.DaysInMonth(year, month)
}
