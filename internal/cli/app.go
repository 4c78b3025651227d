package cli

import (
	"github.com/calebhart/gantry/internal/assistant"
	"github.com/calebhart/gantry/internal/repository"
)

// App holds references to the services CLI commands use. It is wired by
// hand in cmd/gantry/main.go.
type App struct {
	Assistant     assistant.Service
	Conversations repository.ConversationRepo

	// AssistantEnabled reflects the LLM config; the assist command warns
	// when the chat will only produce fallback answers.
	AssistantEnabled bool

	// IsInteractive reports whether stdin is a terminal; the assist TUI
	// refuses to start without one.
	IsInteractive func() bool
}
