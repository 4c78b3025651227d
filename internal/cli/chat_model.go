package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebhart/gantry/internal/assistant"
	"github.com/calebhart/gantry/internal/cli/formatter"
	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/grid"
	"github.com/calebhart/gantry/internal/repository"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// answerMsg carries the assistant's reply back into the update loop.
type answerMsg struct {
	answer *assistant.Answer
	err    error
}

// chatModel is the bubbletea Model for the assist TUI. The transcript
// lives in a scrollable viewport above a single-line input.
type chatModel struct {
	app     *App
	rm      *domain.Roadmap
	conv    *repository.Conversation
	history []assistant.Turn

	vp       viewport.Model
	input    textinput.Model
	lines    []string
	waiting  bool
	quitting bool
	width    int
	height   int
}

func newChatModel(app *App, rm *domain.Roadmap, conv *repository.Conversation, history []assistant.Turn) chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	m := chatModel{
		app:     app,
		rm:      rm,
		conv:    conv,
		history: history,
		vp:      vp,
		input:   ti,
	}

	m.lines = append(m.lines, formatter.StyleHeader.Render(
		fmt.Sprintf("%s (%d)", rm.Title, rm.Year)))
	m.lines = append(m.lines, formatter.StyleDim.Render(
		"ask about epics, stories and dates; /explain <story> shows column math; /suggest reviews the roadmap; esc or /quit to leave"))
	for _, t := range history {
		m.lines = append(m.lines, renderTurn(t.Role, t.Content))
	}
	m.refreshViewport()

	return m
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 2
		m.input.Width = msg.Width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			switch strings.ToLower(text) {
			case "/quit", "/exit", "/q":
				m.quitting = true
				return m, tea.Quit
			case "/suggest":
				return m.suggest()
			}
			if rest, ok := strings.CutPrefix(text, "/explain "); ok {
				return m.explain(strings.TrimSpace(rest))
			}
			return m.submit(text)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, formatter.StyleRed.Render("error: "+msg.err.Error()))
			m.refreshViewport()
			return m, nil
		}
		m.history = append(m.history, assistant.Turn{Role: "assistant", Content: msg.answer.Text})
		m.lines = append(m.lines, renderTurn("assistant", msg.answer.Text))
		if msg.answer.Source == "fallback" {
			m.lines = append(m.lines, formatter.StyleDim.Render("(canned answer; model unavailable)"))
		}
		m.refreshViewport()
		m.persist("assistant", msg.answer.Text, msg.answer.Source)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(formatter.StyleDim.Render("thinking..."))
	} else {
		b.WriteString(formatter.StyleBlue.Render("ask") + formatter.StyleDim.Render("> "))
		b.WriteString(m.input.View())
	}

	return b.String()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (m chatModel) submit(question string) (tea.Model, tea.Cmd) {
	m.lines = append(m.lines, renderTurn("user", question))
	m.refreshViewport()
	m.persist("user", question, "")

	m.waiting = true
	history := m.history
	m.history = append(m.history, assistant.Turn{Role: "user", Content: question})

	app, rm := m.app, m.rm
	return m, func() tea.Msg {
		ans, err := app.Assistant.Chat(context.Background(), rm, history, question)
		return answerMsg{answer: ans, err: err}
	}
}

// suggest asks the assistant to review the whole roadmap.
func (m chatModel) suggest() (tea.Model, tea.Cmd) {
	m.lines = append(m.lines, renderTurn("user", "/suggest"))
	m.persist("user", "/suggest", "")
	m.refreshViewport()

	m.waiting = true
	app, rm := m.app, m.rm
	return m, func() tea.Msg {
		ans, err := app.Assistant.Suggest(context.Background(), rm)
		return answerMsg{answer: ans, err: err}
	}
}

// explain answers "/explain <story title>" with the column reasoning
// for the first story whose title matches.
func (m chatModel) explain(title string) (tea.Model, tea.Cmd) {
	m.lines = append(m.lines, renderTurn("user", "/explain "+title))
	m.persist("user", "/explain "+title, "")

	story := findStory(m.rm, title)
	if story == nil {
		m.lines = append(m.lines, formatter.StyleDim.Render(
			fmt.Sprintf("no story matching %q", title)))
		m.refreshViewport()
		return m, nil
	}
	m.refreshViewport()

	span := grid.ResolveSpan(story.Start, story.End, grid.Options{Year: m.rm.Year})
	m.waiting = true
	app := m.app
	return m, func() tea.Msg {
		ans, err := app.Assistant.ExplainSpan(context.Background(), story, span)
		return answerMsg{answer: ans, err: err}
	}
}

func findStory(rm *domain.Roadmap, title string) *domain.Story {
	needle := strings.ToLower(title)
	for _, epic := range rm.Epics {
		for _, s := range epic.Stories {
			if strings.Contains(strings.ToLower(s.Title), needle) {
				return s
			}
		}
	}
	return nil
}

// persist writes a turn to the conversation store. Storage failures must
// not break the chat, so they are surfaced in the transcript instead.
func (m *chatModel) persist(role, content, source string) {
	if m.app.Conversations == nil || m.conv == nil {
		return
	}
	if _, err := m.app.Conversations.AppendMessage(context.Background(), m.conv.ID, role, content, source); err != nil {
		m.lines = append(m.lines, formatter.StyleDim.Render("(history not saved: "+err.Error()+")"))
	}
}

func (m *chatModel) refreshViewport() {
	m.vp.SetContent(strings.Join(m.lines, "\n"))
	m.vp.GotoBottom()
}

func renderTurn(role, content string) string {
	if role == "user" {
		return formatter.StyleBold.Render("you: ") + content
	}
	return formatter.StyleGreen.Render("gantry: ") + content
}
