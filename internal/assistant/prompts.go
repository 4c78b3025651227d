package assistant

import (
	"fmt"
	"strings"

	"github.com/calebhart/gantry/internal/domain"
)

const chatSystemPrompt = `You are the roadmap assistant for gantry, a CLI that renders team roadmaps onto a 12-month timeline grid.

You help teams refine roadmap JSON files: adjusting story dates, splitting epics, wording annotations, and explaining why a story appears where it does on the grid.

RULES:
1. Dates in roadmap files are European day-first (05/03 is March 5th). Bare month names like "AUG" mean the whole month.
2. When suggesting a date change, give the exact string to put in the JSON file.
3. Keep answers short; this is a terminal, not a chatbot.
4. Never invent stories or epics that are not in the roadmap context provided.`

const suggestSystemPrompt = `You review a team roadmap and suggest at most three concrete improvements: dates that look wrong or missing, at-risk stories that need a timeline change note, epics that are overloaded. Each suggestion is one line with the exact JSON edit to make. Say "nothing stands out" when the roadmap looks fine.`

const explainSystemPrompt = `You explain, in two or three sentences, why a roadmap story is positioned where it is on a 120-column year grid (10 columns per month). You are given the story's dates and its resolved columns. Do not restate the numbers back as a list; write plain prose a teammate would say.`

// FormatRoadmapContext serializes a roadmap into the compact text block
// prepended to the conversation so the model answers about real data.
func FormatRoadmapContext(rm *domain.Roadmap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Roadmap: %s (year %d)\n", rm.Title, rm.Year)
	for _, epic := range rm.Epics {
		fmt.Fprintf(&b, "Epic: %s\n", epic.Title)
		for _, s := range epic.Stories {
			fmt.Fprintf(&b, "  - %s [%s]", s.Title, s.Status)
			if s.StartRaw != "" || s.EndRaw != "" {
				fmt.Fprintf(&b, " start=%q end=%q", s.StartRaw, s.EndRaw)
			}
			if s.TimelineChange != "" {
				fmt.Fprintf(&b, " timeline_change=%q", s.TimelineChange)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
