package mock

import (
	"context"
	"sync"

	"github.com/harunnryd/saku/pkg/llm"
)

// LLMAdapter is a scripted ChatAdapter for tests: it returns the
// configured responses in order (repeating the last one) and records
// every request it receives.
type LLMAdapter struct {
	cfg LLMConfig

	mu    sync.Mutex
	calls []llm.Context
	next  int
}

type LLMConfig struct {
	Responses []llm.Response
	Err       error
}

func NewLLMAdapter(cfg LLMConfig) *LLMAdapter {
	if len(cfg.Responses) == 0 && cfg.Err == nil {
		text := "mock response"
		cfg.Responses = []llm.Response{{
			Text:    text,
			Message: llm.AssistantMessage(text, nil),
		}}
	}
	return &LLMAdapter{cfg: cfg}
}

func (a *LLMAdapter) Name() string { return "mock_llm" }

func (a *LLMAdapter) Generate(ctx context.Context, input llm.Context) (llm.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, input)
	if a.cfg.Err != nil {
		return llm.Response{}, a.cfg.Err
	}
	idx := a.next
	if idx >= len(a.cfg.Responses) {
		idx = len(a.cfg.Responses) - 1
	}
	a.next++
	return a.cfg.Responses[idx], nil
}

// Calls returns the recorded requests in send order.
func (a *LLMAdapter) Calls() []llm.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]llm.Context, len(a.calls))
	copy(out, a.calls)
	return out
}

// CallCount returns how many requests the adapter has handled.
func (a *LLMAdapter) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}
