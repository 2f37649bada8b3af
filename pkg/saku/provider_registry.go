package saku

import (
	"fmt"
	"strings"

	"github.com/harunnryd/saku/pkg/llm"
)

// LLMFactory builds a chat adapter from config.
type LLMFactory func(cfg Config) (llm.ChatAdapter, error)

// ProviderRegistry maps provider names to adapter factories so the
// binary can select the chat backend from config alone.
type ProviderRegistry struct {
	llm map[string]LLMFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{llm: make(map[string]LLMFactory)}
}

func (r *ProviderRegistry) RegisterLLM(name string, factory LLMFactory) {
	r.llm[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) BuildLLM(provider string, cfg Config) (llm.ChatAdapter, error) {
	fn := r.llm[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, fmt.Errorf("llm provider not registered: %s", provider)
	}
	return fn(cfg)
}
