package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	configpkg "github.com/botcampus-ai/gemini-chat-go/pkg/config"
)

// completionRequest mirrors the fields of the chat-completion request body
// the tests assert on.
type completionRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionJSON(content string) string {
	return fmt.Sprintf(`{
		"id": "cmpl-test",
		"object": "chat.completion",
		"model": "gemini-2.0-flash",
		"choices": [
			{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %q}}
		],
		"usage": {"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12}
	}`, content)
}

func newTestAssistant(t *testing.T, handler http.HandlerFunc) *Assistant {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := New("assistant", configpkg.Config{
		APIKey:       "test-key",
		Model:        "gemini-2.0-flash",
		BaseURL:      srv.URL,
		SystemPrompt: "Be concise.",
		Temperature:  0.3,
		MaxTokens:    1024,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return a
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("assistant", configpkg.Config{Model: "gemini-2.0-flash"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewRequiresName(t *testing.T) {
	if _, err := New("  ", configpkg.Config{APIKey: "k", Model: "gemini-2.0-flash"}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestNewSeedsHistoryWithSystemInstruction(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("construction must not reach the network")
	})
	if a.Name() != "assistant" {
		t.Fatalf("unexpected name: %q", a.Name())
	}
	if len(a.history) != 1 {
		t.Fatalf("history should hold only the system instruction, got %d entries", len(a.history))
	}
}

func TestRunSendsConfiguredParams(t *testing.T) {
	var got completionRequest
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("hi")))
	})

	reply, err := a.Run(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	if got.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", got.Temperature)
	}
	if got.MaxTokens != 1024 {
		t.Fatalf("unexpected max_tokens: %d", got.MaxTokens)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	if got.Messages[1].Content != "hello" {
		t.Fatalf("unexpected user content: %q", got.Messages[1].Content)
	}

	if reply.Content != "hi" {
		t.Fatalf("unexpected reply content: %q", reply.Content)
	}
	if reply.Usage.TotalTokens != 12 {
		t.Fatalf("unexpected usage: %+v", reply.Usage)
	}
}

func TestRunCarriesHistoryAcrossTurns(t *testing.T) {
	var requests []completionRequest
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		requests = append(requests, req)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("reply")))
	})

	for _, input := range []string{"first", "second"} {
		if _, err := a.Run(context.Background(), input); err != nil {
			t.Fatalf("Run(%q) returned error: %v", input, err)
		}
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	// Second request: system, user, assistant, user.
	if len(requests[1].Messages) != 4 {
		t.Fatalf("second request should carry full history, got %d messages", len(requests[1].Messages))
	}
	if len(a.history) != 5 {
		t.Fatalf("history should grow by two per turn, got %d entries", len(a.history))
	}
}

func TestRunRollsBackHistoryOnError(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	})

	if _, err := a.Run(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from failing endpoint")
	}
	if len(a.history) != 1 {
		t.Fatalf("failed turn must not grow history, got %d entries", len(a.history))
	}
}

func TestRunEmptyChoicesIsError(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cmpl-test", "object": "chat.completion", "choices": []}`))
	})

	if _, err := a.Run(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty choices")
	}
	if len(a.history) != 1 {
		t.Fatalf("failed turn must not grow history, got %d entries", len(a.history))
	}
}

func TestResetKeepsOnlySystemInstruction(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("reply")))
	})

	if _, err := a.Run(context.Background(), "hello"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	a.Reset()
	if len(a.history) != 1 {
		t.Fatalf("Reset should keep only the system instruction, got %d entries", len(a.history))
	}
}

func TestReplyTextPrefersContent(t *testing.T) {
	r := Reply{Content: "hello", Raw: `{"role":"assistant"}`}
	if got := r.Text(); got != "hello" {
		t.Fatalf("Text() = %q, want content", got)
	}
}

func TestReplyTextFallsBackToRaw(t *testing.T) {
	r := Reply{Content: "   ", Raw: `{"role":"assistant"}`}
	if got := r.Text(); got != `{"role":"assistant"}` {
		t.Fatalf("Text() = %q, want raw representation", got)
	}
}
