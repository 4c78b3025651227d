package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calebhart/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoadmap() *domain.Roadmap {
	return &domain.Roadmap{
		Title: "Platform 2025",
		Year:  2025,
		Epics: []*domain.Epic{
			{
				ID:    "billing",
				Title: "Billing rework",
				Stories: []*domain.Story{
					{
						ID:    "s1",
						Title: "Invoicing v2",
						Start: domain.ExactDate(2025, 1, 15),
						End:   domain.ExactDate(2025, 3, 31),
					},
					{
						ID:          "s2",
						Title:       "Dunning emails",
						Status:      domain.StoryAtRisk,
						Start:       domain.MonthToken(2025, 9),
						End:         domain.ExactDate(2026, 2, 1),
						Annotations: []string{"waiting on legal"},
					},
				},
			},
		},
	}
}

func TestBuildPage_Positions(t *testing.T) {
	page := BuildPage(sampleRoadmap(), Options{})

	require.Len(t, page.Months, 12)
	assert.Equal(t, "JAN", page.Months[0].Label)
	assert.Equal(t, 1, page.Months[0].StartColumn)
	assert.Equal(t, 111, page.Months[11].StartColumn)

	require.Len(t, page.Epics, 1)
	stories := page.Epics[0].Stories
	require.Len(t, stories, 2)

	assert.Equal(t, 5, stories[0].StartColumn)
	assert.Equal(t, 31, stories[0].EndColumn)
	assert.Empty(t, stories[0].ContinuesRight)

	assert.Equal(t, 81, stories[1].StartColumn, "September token base")
	assert.Equal(t, 121, stories[1].EndColumn, "clamped at December's end")
	assert.Equal(t, "continues into Feb 2026", stories[1].ContinuesRight)
}

func TestBuildPage_AnnotationPlacement(t *testing.T) {
	page := BuildPage(sampleRoadmap(), Options{})
	ann := page.Epics[0].Stories[1].Annotation
	require.NotNil(t, ann)
	assert.Equal(t, 2, ann.Row, "bar ends at the grid edge, box must drop below")
	assert.Equal(t, 81, ann.Column)
	assert.Equal(t, 16, ann.Width)
	assert.Equal(t, 2, page.Epics[0].Stories[1].Rows)
}

// A timeline-change note alone is enough to earn an annotation box.
func TestBuildPage_TimelineChangeOnlyGetsBox(t *testing.T) {
	rm := sampleRoadmap()
	rm.Epics[0].Stories[0].TimelineChange = "slipped from Q1"

	page := BuildPage(rm, Options{})
	ann := page.Epics[0].Stories[0].Annotation
	require.NotNil(t, ann)
	assert.Equal(t, []string{"slipped from Q1"}, ann.Items)
}

func TestBuildPage_ForceAnnotationsBelow(t *testing.T) {
	rm := sampleRoadmap()
	rm.Epics[0].Stories[0].Annotations = []string{"ok"}

	page := BuildPage(rm, Options{ForceAnnotationsBelow: true})
	ann := page.Epics[0].Stories[0].Annotation
	require.NotNil(t, ann)
	assert.Equal(t, 2, ann.Row)
	assert.Equal(t, page.Epics[0].Stories[0].StartColumn, ann.Column)
}

func TestBuildPage_SortByDate(t *testing.T) {
	rm := sampleRoadmap()
	// File order is Jan story then Sep story; reverse it.
	rm.Epics[0].Stories[0], rm.Epics[0].Stories[1] = rm.Epics[0].Stories[1], rm.Epics[0].Stories[0]

	page := BuildPage(rm, Options{SortByDate: true})
	stories := page.Epics[0].Stories
	assert.Equal(t, "Invoicing v2", stories[0].Title)
	assert.Equal(t, "Dunning emails", stories[1].Title)
}

func TestRender_HTMLOutput(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleRoadmap(), DefaultTheme(), Options{})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Platform 2025 - 2025</title>")
	assert.Contains(t, html, "grid-column: 5 / 31", "Invoicing v2 bar position")
	assert.Contains(t, html, "grid-column: 81 / 121", "clamped Dunning bar")
	assert.Contains(t, html, "continues into Feb 2026")
	assert.Contains(t, html, `class="bar at_risk"`)
	assert.Contains(t, html, "waiting on legal")
	assert.Contains(t, html, "repeat(120,")
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := RenderToFile(dir, "platform", sampleRoadmap(), DefaultTheme(), Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "platform.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestLoadTheme_PartialOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors:\n  bar_default: \"#111827\"\n"), 0o644))

	theme, err := LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, "#111827", theme.Colors.BarDefault)
	assert.Equal(t, DefaultTheme().Colors.Background, theme.Colors.Background,
		"unset fields keep their defaults")
}

func TestLoadTheme_MissingFile(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
