package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOllamaProvider(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{URL: server.URL, Model: "llama3.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestOllamaProvider_HappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":             "llama3.2",
			"created_at":        "2026-01-01T00:00:00Z",
			"message":           map[string]any{"role": "assistant", "content": `{"question":"Solve 2x = 8","correct_answer":"4","explanation":"Divide by 2."}`},
			"done":              true,
			"done_reason":       "stop",
			"prompt_eval_count": 30,
			"eval_count":        20,
		})
	}

	p := newTestOllamaProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a maths teacher.",
		Messages:    []Message{{Role: RoleUser, Content: "Generate a question."}},
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var content map[string]string
	if err := json.Unmarshal(resp.Content, &content); err != nil {
		t.Fatalf("invalid content: %v", err)
	}
	if content["correct_answer"] != "4" {
		t.Fatalf("expected answer 4, got %q", content["correct_answer"])
	}
	if resp.Usage.InputTokens != 30 || resp.Usage.OutputTokens != 20 || resp.Usage.TotalTokens != 50 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}

	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	if got["stream"] != false {
		t.Fatalf("expected non-streaming request, got %v", got["stream"])
	}
}

func TestOllamaProvider_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3.2",
			"message": map[string]any{"role": "assistant", "content": `{"question":"Solve 2x = 8"}`},
			"done":    true,
		})
	}

	p := newTestOllamaProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
		Schema:   testSchema(),
	})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOllamaProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"error": "model not loaded"})
	}

	p := newTestOllamaProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOllamaProvider_InvalidURL(t *testing.T) {
	if _, err := NewOllamaProvider(OllamaConfig{URL: "://bad", Model: "llama3.2"}); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}
