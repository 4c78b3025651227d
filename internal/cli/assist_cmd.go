package cli

import (
	"context"
	"fmt"

	"github.com/calebhart/gantry/internal/assistant"
	"github.com/calebhart/gantry/internal/cli/formatter"
	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/repository"
	"github.com/calebhart/gantry/internal/roadmap"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newAssistCmd(app *App) *cobra.Command {
	var (
		resume bool
		ask    string
	)

	cmd := &cobra.Command{
		Use:   "assist <roadmap.json>",
		Short: "Chat with the roadmap assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := roadmap.Load(args[0])
			if err != nil {
				return err
			}

			if !app.AssistantEnabled {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render(
					"assistant model is not configured (set GANTRY_LLM_ENABLED=1); answers will be canned fallbacks"))
			}

			if ask != "" {
				return runOneShot(cmd, app, rm, ask)
			}

			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("assist needs an interactive terminal; use --ask for one-shot questions")
			}

			conv, history, err := openConversation(cmd.Context(), app, rm, resume)
			if err != nil {
				return err
			}

			model := newChatModel(app, rm, conv, history)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "continue the most recent conversation for this roadmap")
	cmd.Flags().StringVar(&ask, "ask", "", "ask a single question and print the answer")

	return cmd
}

func runOneShot(cmd *cobra.Command, app *App, rm *domain.Roadmap, question string) error {
	ans, err := app.Assistant.Chat(cmd.Context(), rm, nil, question)
	if err != nil {
		return err
	}
	if ans.Source == "fallback" {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleDim.Render(ans.Text))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), ans.Text)
	}
	return nil
}

// openConversation resumes the latest stored conversation for the
// roadmap (when asked and one exists) or starts a fresh one.
func openConversation(ctx context.Context, app *App, rm *domain.Roadmap, resume bool) (*repository.Conversation, []assistant.Turn, error) {
	if resume {
		conv, err := app.Conversations.Latest(ctx, rm.SourceRef)
		if err != nil {
			return nil, nil, err
		}
		if conv != nil {
			msgs, err := app.Conversations.Messages(ctx, conv.ID)
			if err != nil {
				return nil, nil, err
			}
			history := make([]assistant.Turn, 0, len(msgs))
			for _, m := range msgs {
				history = append(history, assistant.Turn{Role: m.Role, Content: m.Content})
			}
			return conv, history, nil
		}
	}

	conv, err := app.Conversations.Create(ctx, rm.SourceRef, rm.Title)
	if err != nil {
		return nil, nil, err
	}
	return conv, nil, nil
}
