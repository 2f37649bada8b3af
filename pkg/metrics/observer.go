package metrics

import "time"

// Event names emitted by the orchestration path.
const (
	EventChatRound     = "chat_round"
	EventToolExec      = "tool_exec"
	EventRateLimit     = "llm_rate_limit"
	EventBreakerOpen   = "llm_breaker_open"
	EventBreakerClose  = "llm_breaker_close"
	EventBreakerDenied = "llm_breaker_denied"
)

type Event struct {
	Name   string
	Time   time.Time
	Value  float64
	Tags   map[string]string
	Fields map[string]any
}

type Observer interface {
	RecordEvent(ev Event)
}

type NoopObserver struct{}

func (NoopObserver) RecordEvent(Event) {}
