// Package assistant is the LLM-backed chat layer over roadmap data. It
// builds prompts from loaded roadmaps and resolved grid positions; all
// model access goes through the llm package and every answer degrades to
// a deterministic fallback when the model is unavailable.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/llm"
)

// Turn is one user/assistant exchange kept in conversation history.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Answer is the assistant's reply plus provenance.
type Answer struct {
	Text   string
	Source string // "llm" or "fallback"
}

// Service answers chat questions about a roadmap and explains story
// positions.
type Service interface {
	// Chat continues a conversation about rm. history holds prior turns
	// oldest-first; question is the new user message.
	Chat(ctx context.Context, rm *domain.Roadmap, history []Turn, question string) (*Answer, error)

	// ExplainSpan explains why a story landed on its resolved columns.
	ExplainSpan(ctx context.Context, story *domain.Story, span domain.GridSpan) (*Answer, error)

	// Suggest reviews rm and proposes a few concrete edits.
	Suggest(ctx context.Context, rm *domain.Roadmap) (*Answer, error)
}

type service struct {
	client   llm.Client
	observer llm.Observer
}

// New creates a Service backed by an LLM client.
func New(client llm.Client, observer llm.Observer) Service {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &service{client: client, observer: observer}
}

func (s *service) Chat(ctx context.Context, rm *domain.Roadmap, history []Turn, question string) (*Answer, error) {
	messages := []llm.Message{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "system", Content: "Current roadmap:\n" + FormatRoadmapContext(rm)},
	}
	for _, t := range history {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: question})

	resp, err := s.client.Chat(ctx, llm.ChatRequest{Task: llm.TaskChat, Messages: messages})
	if err != nil {
		return chatFallback(rm), nil
	}
	return &Answer{Text: resp.Text, Source: "llm"}, nil
}

func (s *service) ExplainSpan(ctx context.Context, story *domain.Story, span domain.GridSpan) (*Answer, error) {
	user := fmt.Sprintf(
		"Story %q: start=%q end=%q resolved to columns %d..%d (prev-year=%v next-year=%v).",
		story.Title, story.StartRaw, story.EndRaw,
		span.StartColumn, span.EndColumn, span.SpansPrevYear, span.SpansNextYear,
	)
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task: llm.TaskExplain,
		Messages: []llm.Message{
			{Role: "system", Content: explainSystemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return explainFallback(story, span), nil
	}
	return &Answer{Text: resp.Text, Source: "llm"}, nil
}

func (s *service) Suggest(ctx context.Context, rm *domain.Roadmap) (*Answer, error) {
	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task: llm.TaskSuggest,
		Messages: []llm.Message{
			{Role: "system", Content: suggestSystemPrompt},
			{Role: "user", Content: "Current roadmap:\n" + FormatRoadmapContext(rm)},
		},
	})
	if err != nil {
		return suggestFallback(rm), nil
	}
	return &Answer{Text: resp.Text, Source: "llm"}, nil
}

// chatFallback is the deterministic answer used when the model is down.
// The assistant degrading must never take the rest of the tool with it.
func chatFallback(rm *domain.Roadmap) *Answer {
	return &Answer{
		Text: fmt.Sprintf(
			"The assistant model is not reachable right now. Roadmap %q has %d epics; edit the JSON file directly and re-run 'gantry generate'.",
			rm.Title, len(rm.Epics)),
		Source: "fallback",
	}
}

func explainFallback(story *domain.Story, span domain.GridSpan) *Answer {
	text := fmt.Sprintf("%q spans columns %d to %d", story.Title, span.StartColumn, span.EndColumn)
	if span.SpansNextYear {
		text += fmt.Sprintf(", continuing into %s", span.TrueEnd.MonthLabel())
	}
	if span.SpansPrevYear {
		text += fmt.Sprintf(", having started %s", span.TrueStart.MonthLabel())
	}
	return &Answer{Text: text + ".", Source: "fallback"}
}

// suggestFallback points at the stories a deterministic pass can already
// flag: authored dates that never parsed, and at-risk stories without a
// timeline-change note.
func suggestFallback(rm *domain.Roadmap) *Answer {
	var flagged []string
	for _, epic := range rm.Epics {
		for _, s := range epic.Stories {
			switch {
			case s.StartRaw != "" && s.Start.IsZero():
				flagged = append(flagged, fmt.Sprintf("%q: start %q will not parse", s.Title, s.StartRaw))
			case s.EndRaw != "" && s.End.IsZero():
				flagged = append(flagged, fmt.Sprintf("%q: end %q will not parse", s.Title, s.EndRaw))
			case s.Status == domain.StoryAtRisk && s.TimelineChange == "":
				flagged = append(flagged, fmt.Sprintf("%q is at risk but has no timeline_change note", s.Title))
			}
		}
	}
	if len(flagged) == 0 {
		return &Answer{Text: "Nothing stands out; the assistant model is not reachable for a deeper review.", Source: "fallback"}
	}
	return &Answer{Text: "Worth a look:\n- " + strings.Join(flagged, "\n- "), Source: "fallback"}
}

// Disabled returns a Service that always answers with the fallback. Used
// when the assistant is not configured, so callers need no nil checks.
func Disabled() Service {
	return &service{client: unavailableClient{}, observer: llm.NoopObserver{}}
}

type unavailableClient struct{}

func (unavailableClient) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	return nil, llm.ErrUnavailable
}

func (unavailableClient) Available(ctx context.Context) bool { return false }
