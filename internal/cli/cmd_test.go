package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/calebhart/gantry/internal/assistant"
	"github.com/calebhart/gantry/internal/db"
	"github.com/calebhart/gantry/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App with the assistant disabled and an in-memory
// conversation store, which is what most commands need.
func testApp(t *testing.T) *App {
	t.Helper()
	d, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	return &App{
		Assistant:     assistant.Disabled(),
		Conversations: repository.NewSQLiteConversationRepo(d),
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// writeRoadmap drops a roadmap JSON file into a temp dir.
func writeRoadmap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roadmap.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validRoadmap = `{
  "title": "Platform 2025",
  "year": 2025,
  "epics": [
    {
      "title": "Billing",
      "stories": [
        {"title": "Invoicing", "start_date": "2025-01-15", "end_date": "2025-03-31"},
        {"title": "Dunning", "start_month": "AUG", "end_month": "OCT", "status": "in_progress"}
      ]
    }
  ]
}`

// --- validate ---

func TestValidateCmd_ValidFile(t *testing.T) {
	path := writeRoadmap(t, validRoadmap)

	out, err := executeCmd(t, testApp(t), "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestValidateCmd_StructuralProblems(t *testing.T) {
	path := writeRoadmap(t, `{
	  "title": "",
	  "year": 2025,
	  "epics": [{"title": "E", "stories": [{"title": "", "status": "bogus"}]}]
	}`)

	out, err := executeCmd(t, testApp(t), "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "fail")
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "bogus")
}

func TestValidateCmd_StrictFlagsBadDates(t *testing.T) {
	path := writeRoadmap(t, `{
	  "title": "R",
	  "year": 2025,
	  "epics": [{"title": "E", "stories": [{"title": "S", "start_date": "sometime soon"}]}]
	}`)

	// Without --strict the bad date renders best-effort, so the file passes.
	_, err := executeCmd(t, testApp(t), "validate", path)
	require.NoError(t, err)

	out, err := executeCmd(t, testApp(t), "validate", "--strict", path)
	require.Error(t, err)
	assert.Contains(t, out, "sometime soon")
	assert.Contains(t, out, "will not parse")
}

// --- generate ---

func TestGenerateCmd_WritesHTML(t *testing.T) {
	path := writeRoadmap(t, validRoadmap)
	outDir := t.TempDir()

	out, err := executeCmd(t, testApp(t), "generate", "--out", outDir, path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	htmlPath := filepath.Join(outDir, "roadmap.html")
	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Platform 2025")
	assert.Contains(t, string(data), "Invoicing")
}

func TestGenerateCmd_BadRangeFlag(t *testing.T) {
	path := writeRoadmap(t, validRoadmap)

	_, err := executeCmd(t, testApp(t), "generate", "--out", t.TempDir(), "--from", "whenever", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

// --- search ---

func TestSearchCmd_FindsStories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.json"), []byte(validRoadmap), 0o644))

	out, err := executeCmd(t, testApp(t), "search", "invoic", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoicing")
	assert.NotContains(t, out, "Dunning")
}

func TestSearchCmd_WindowFiltering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.json"), []byte(validRoadmap), 0o644))

	// A window covering only the autumn should drop the spring story.
	out, err := executeCmd(t, testApp(t), "search",
		"--dir", dir, "--year", "2025", "--from", "2025-09-01", "--to", "2025-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Dunning")
	assert.NotContains(t, out, "Invoicing")
}

// --- assist ---

func TestAssistCmd_OneShotFallback(t *testing.T) {
	path := writeRoadmap(t, validRoadmap)

	out, err := executeCmd(t, testApp(t), "assist", "--ask", "what is in flight?", path)
	require.NoError(t, err)
	// Disabled assistant still answers with a canned summary.
	assert.Contains(t, out, "Platform 2025")
}

func TestAssistCmd_RefusesNonInteractiveTUI(t *testing.T) {
	path := writeRoadmap(t, validRoadmap)

	_, err := executeCmd(t, testApp(t), "assist", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive")
}
