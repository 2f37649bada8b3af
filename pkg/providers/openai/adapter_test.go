package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harunnryd/saku/pkg/llm"
	"github.com/harunnryd/saku/pkg/resilience"
)

func newTestAdapter(url string) *Adapter {
	a := NewAdapter("test-key", "test-model")
	a.BaseURL = url
	return a
}

func TestGenerateContentOnly(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	resp, err := a.Generate(context.Background(), llm.Context{
		Messages: []llm.Message{llm.UserMessage("hi")},
	})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if resp.Text != "hello there" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if resp.HasToolCalls() {
		t.Fatalf("did not expect tool calls")
	}
	if resp.Usage.TotalTokens != 13 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if captured["model"] != "test-model" {
		t.Fatalf("unexpected model: %v", captured["model"])
	}
	if _, ok := captured["tools"]; ok {
		t.Fatalf("tools must be omitted when none are offered")
	}
	if _, ok := captured["tool_choice"]; ok {
		t.Fatalf("tool_choice must be omitted when no tools are offered")
	}
}

func TestGenerateOffersTools(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":null,"tool_calls":[{"id":"call_1","type":"function","function":{"name":"calculate","arguments":"{\"operation\":\"divide\",\"a\":150,\"b\":5}"}}]},"finish_reason":"tool_calls"}]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	resp, err := a.Generate(context.Background(), llm.Context{
		Messages: []llm.Message{llm.UserMessage("what is 150/5?")},
		Tools: []llm.Tool{{
			Name:        "calculate",
			Description: "Perform a mathematical calculation",
			Schema:      map[string]any{"type": "object"},
		}},
	})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	toolsField, ok := captured["tools"].([]any)
	if !ok || len(toolsField) != 1 {
		t.Fatalf("expected one offered tool, got %v", captured["tools"])
	}
	entry := toolsField[0].(map[string]any)
	if entry["type"] != "function" {
		t.Fatalf("unexpected tool type: %v", entry["type"])
	}
	fn := entry["function"].(map[string]any)
	if fn["name"] != "calculate" {
		t.Fatalf("unexpected function name: %v", fn["name"])
	}
	if captured["tool_choice"] != "auto" {
		t.Fatalf("unexpected tool_choice: %v", captured["tool_choice"])
	}

	if !resp.HasToolCalls() {
		t.Fatalf("expected tool calls")
	}
	call := resp.ToolCalls[0]
	if call.ID != "call_1" || call.Function.Name != "calculate" {
		t.Fatalf("unexpected tool call: %+v", call)
	}
	if call.Function.Arguments != `{"operation":"divide","a":150,"b":5}` {
		t.Fatalf("unexpected raw arguments: %s", call.Function.Arguments)
	}
	if resp.Message.Content != nil {
		t.Fatalf("expected absent content on tool-call turn")
	}
	if resp.Text != "" {
		t.Fatalf("expected empty text, got %q", resp.Text)
	}
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	_, err := a.Generate(context.Background(), llm.Context{Messages: []llm.Message{llm.UserMessage("hi")}})
	te, ok := llm.IsTransport(err)
	if !ok {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", te.StatusCode)
	}
	if te.Body != `{"error":"invalid api key"}` {
		t.Fatalf("expected raw body preserved, got %q", te.Body)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	_, err := a.Generate(context.Background(), llm.Context{Messages: []llm.Message{llm.UserMessage("hi")}})
	if !resilience.IsRateLimit(err) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	_, err := a.Generate(context.Background(), llm.Context{Messages: []llm.Message{llm.UserMessage("hi")}})
	if !errors.Is(err, llm.ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":`))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	_, err := a.Generate(context.Background(), llm.Context{Messages: []llm.Message{llm.UserMessage("hi")}})
	if _, ok := llm.IsTransport(err); !ok {
		t.Fatalf("expected TransportError for malformed body, got %v", err)
	}
}

func TestGenerateClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(srv.URL)
	a.Client.Timeout = 20 * time.Millisecond
	_, err := a.Generate(context.Background(), llm.Context{Messages: []llm.Message{llm.UserMessage("hi")}})
	te, ok := llm.IsTransport(err)
	if !ok {
		t.Fatalf("expected TransportError for timeout, got %v", err)
	}
	if te.StatusCode != 0 {
		t.Fatalf("expected status 0 for timeout, got %d", te.StatusCode)
	}
}
