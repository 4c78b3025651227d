package formatter

import (
	"fmt"
	"strings"

	"github.com/calebhart/gantry/internal/search"
)

// FormatSearchResults renders search hits for the terminal, grouped by
// source file.
func FormatSearchResults(results []search.Result) string {
	if len(results) == 0 {
		return StyleDim.Render("No matching stories.")
	}

	var b strings.Builder
	lastFile := ""
	for _, r := range results {
		if r.File != lastFile {
			if lastFile != "" {
				b.WriteString("\n")
			}
			b.WriteString(StyleHeader.Render(r.File) + "\n")
			lastFile = r.File
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s %s\n",
			StatusIndicator(r.Story.Status),
			StatusStyle(r.Story.Status).Bold(true).Render(r.Story.Title),
			StyleDim.Render("("+r.EpicTitle+")"),
			formatSpanSummary(r),
		))
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("\n%d stories matched.", len(results))))
	return b.String()
}

func formatSpanSummary(r search.Result) string {
	parts := []string{fmt.Sprintf("cols %d-%d", r.Span.StartColumn, r.Span.EndColumn)}
	if r.Span.SpansPrevYear {
		parts = append(parts, "starts "+r.Span.TrueStart.MonthLabel())
	}
	if r.Span.SpansNextYear {
		parts = append(parts, "continues into "+r.Span.TrueEnd.MonthLabel())
	}
	return StyleDim.Render("[" + strings.Join(parts, ", ") + "]")
}

// FormatWarnings renders non-fatal load problems.
func FormatWarnings(warnings []error) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("warning: ") + w.Error() + "\n")
	}
	return b.String()
}
