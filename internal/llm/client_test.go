package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOllama(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Config) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = ts.URL
	return ts, cfg
}

func TestChat_Success(t *testing.T) {
	var gotReq ollamaChatRequest
	_, cfg := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   "llama3.2",
			Message: Message{Role: "assistant", Content: "Move the end date to Nov."},
		})
	})

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Chat(context.Background(), ChatRequest{
		Task: TaskChat,
		Messages: []Message{
			{Role: "system", Content: "You help teams edit roadmaps."},
			{Role: "user", Content: "When should invoicing end?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Move the end date to Nov.", resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)

	assert.False(t, gotReq.Stream)
	assert.Len(t, gotReq.Messages, 2)
	assert.Equal(t, cfg.Tasks[TaskChat].Temperature, gotReq.Options.Temperature)
}

func TestChat_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	_, cfg := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "busy", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: Message{Content: "ok"}})
	})
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Chat(context.Background(), ChatRequest{Task: TaskChat})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, calls)
}

func TestChat_RetryExhausted(t *testing.T) {
	_, cfg := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusInternalServerError)
	})
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskChat})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestChat_ObserverSeesFailure(t *testing.T) {
	_, cfg := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})
	cfg.MaxRetries = 0

	obs := &recordingObserver{}
	client := NewOllamaClient(cfg, obs)
	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskSuggest})
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, TaskSuggest, obs.events[0].Task)
	assert.Equal(t, "request_failed", obs.events[0].ErrorCode)
}

func TestAvailable(t *testing.T) {
	_, cfg := fakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	client := NewOllamaClient(cfg, nil)
	assert.True(t, client.Available(context.Background()))

	cfg.Endpoint = "http://127.0.0.1:1"
	down := NewOllamaClient(cfg, nil)
	assert.False(t, down.Available(context.Background()))
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCallComplete(e CallEvent) { r.events = append(r.events, e) }
