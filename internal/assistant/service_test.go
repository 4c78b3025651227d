package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/calebhart/gantry/internal/domain"
	"github.com/calebhart/gantry/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastReq llm.ChatRequest
	reply   string
	err     error
}

func (f *fakeClient) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Text: f.reply, Model: "test"}, nil
}

func (f *fakeClient) Available(ctx context.Context) bool { return f.err == nil }

func chatRoadmap() *domain.Roadmap {
	return &domain.Roadmap{
		Title: "Platform 2025",
		Year:  2025,
		Epics: []*domain.Epic{{
			Title: "Billing",
			Stories: []*domain.Story{{
				Title:    "Invoicing v2",
				Status:   domain.StoryInProgress,
				StartRaw: "05/03",
				EndRaw:   "AUG",
			}},
		}},
	}
}

func TestChat_BuildsContextAndHistory(t *testing.T) {
	client := &fakeClient{reply: "Push the end to SEP."}
	svc := New(client, nil)

	history := []Turn{
		{Role: "user", Content: "What looks risky?"},
		{Role: "assistant", Content: "Invoicing v2 is tight."},
	}
	ans, err := svc.Chat(context.Background(), chatRoadmap(), history, "So what should we change?")
	require.NoError(t, err)
	assert.Equal(t, "llm", ans.Source)
	assert.Equal(t, "Push the end to SEP.", ans.Text)

	msgs := client.lastReq.Messages
	require.Len(t, msgs, 5, "2 system + 2 history + question")
	assert.Equal(t, llm.TaskChat, client.lastReq.Task)
	assert.Contains(t, msgs[1].Content, "Invoicing v2", "roadmap context is embedded")
	assert.Contains(t, msgs[1].Content, `start="05/03"`)
	assert.Equal(t, "So what should we change?", msgs[4].Content)
}

func TestChat_FallsBackWhenModelUnavailable(t *testing.T) {
	svc := New(&fakeClient{err: llm.ErrUnavailable}, nil)

	ans, err := svc.Chat(context.Background(), chatRoadmap(), nil, "hello?")
	require.NoError(t, err, "assistant failure must never propagate as an error")
	assert.Equal(t, "fallback", ans.Source)
	assert.Contains(t, ans.Text, "Platform 2025")
}

func TestExplainSpan_LLM(t *testing.T) {
	client := &fakeClient{reply: "It starts mid-March because 05/03 is day-first."}
	svc := New(client, nil)

	story := chatRoadmap().Epics[0].Stories[0]
	span := domain.GridSpan{StartColumn: 24, EndColumn: 81}
	ans, err := svc.ExplainSpan(context.Background(), story, span)
	require.NoError(t, err)
	assert.Equal(t, "llm", ans.Source)
	assert.Equal(t, llm.TaskExplain, client.lastReq.Task)
	assert.Contains(t, client.lastReq.Messages[1].Content, "columns 24..81")
}

func TestExplainSpan_FallbackMentionsContinuation(t *testing.T) {
	svc := New(&fakeClient{err: errors.New("boom")}, nil)

	story := &domain.Story{Title: "Dunning emails"}
	span := domain.GridSpan{
		StartColumn:   81,
		EndColumn:     121,
		SpansNextYear: true,
		TrueEnd:       domain.ExactDate(2026, 2, 1),
	}
	ans, err := svc.ExplainSpan(context.Background(), story, span)
	require.NoError(t, err)
	assert.Equal(t, "fallback", ans.Source)
	assert.Contains(t, ans.Text, "continuing into Feb 2026")
}

func TestSuggest_LLM(t *testing.T) {
	client := &fakeClient{reply: "Move Invoicing v2's end to SEP."}
	svc := New(client, nil)

	ans, err := svc.Suggest(context.Background(), chatRoadmap())
	require.NoError(t, err)
	assert.Equal(t, "llm", ans.Source)
	assert.Equal(t, llm.TaskSuggest, client.lastReq.Task)
	assert.Contains(t, client.lastReq.Messages[1].Content, "Invoicing v2")
}

func TestSuggest_FallbackFlagsProblems(t *testing.T) {
	svc := New(&fakeClient{err: llm.ErrUnavailable}, nil)

	rm := chatRoadmap()
	rm.Epics[0].Stories = append(rm.Epics[0].Stories,
		&domain.Story{Title: "Dunning emails", StartRaw: "sometime soon"},
		&domain.Story{Title: "Late fees", Status: domain.StoryAtRisk},
	)
	ans, err := svc.Suggest(context.Background(), rm)
	require.NoError(t, err)
	assert.Equal(t, "fallback", ans.Source)
	assert.Contains(t, ans.Text, `start "sometime soon" will not parse`)
	assert.Contains(t, ans.Text, "at risk but has no timeline_change note")

	// A clean roadmap gets the all-clear.
	clean := &domain.Roadmap{Title: "R", Year: 2025}
	ans, err = svc.Suggest(context.Background(), clean)
	require.NoError(t, err)
	assert.Contains(t, ans.Text, "Nothing stands out")
}

func TestDisabledService(t *testing.T) {
	svc := Disabled()
	ans, err := svc.Chat(context.Background(), chatRoadmap(), nil, "anything")
	require.NoError(t, err)
	assert.Equal(t, "fallback", ans.Source)
}

func TestFormatRoadmapContext(t *testing.T) {
	text := FormatRoadmapContext(chatRoadmap())
	assert.True(t, strings.HasPrefix(text, "Roadmap: Platform 2025 (year 2025)"))
	assert.Contains(t, text, "Epic: Billing")
	assert.Contains(t, text, "[in_progress]")
}
