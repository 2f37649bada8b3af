package saku

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harunnryd/saku/pkg/errorsx"
	"github.com/harunnryd/saku/pkg/llm"
	"github.com/harunnryd/saku/pkg/metrics"
	"github.com/harunnryd/saku/pkg/resilience"
	"github.com/harunnryd/saku/pkg/tools"
)

// Orchestrator drives one conversation with the chat endpoint: it offers
// the registered tools on the first request, executes any tool calls the
// model issues, feeds the results back and returns the final answer.
//
// Tool resolution is bounded by MaxToolRounds (default 1, the behavior
// of the source design): the response after the last permitted round is
// final even if it requests further tools. Only transport and
// configuration failures escape as errors; everything tool-related is
// converted into conversational content before it reaches the model.
type Orchestrator struct {
	adapter    llm.ChatAdapter
	registry   *tools.Registry
	dispatcher *ToolDispatcher
	maxRounds  int
	logger     *slog.Logger
	obs        metrics.Observer
}

type OrchestratorOptions struct {
	// MaxToolRounds is the number of dispatch-and-resend cycles allowed
	// per user message. Zero means the default of one round.
	MaxToolRounds int
}

func NewOrchestrator(adapter llm.ChatAdapter, registry *tools.Registry, dispatcher *ToolDispatcher) *Orchestrator {
	return NewOrchestratorWithOptions(adapter, registry, dispatcher, OrchestratorOptions{})
}

func NewOrchestratorWithOptions(adapter llm.ChatAdapter, registry *tools.Registry, dispatcher *ToolDispatcher, opts OrchestratorOptions) *Orchestrator {
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = 1
	}
	if dispatcher == nil {
		dispatcher = NewToolDispatcher(registry)
	}
	return &Orchestrator{
		adapter:    adapter,
		registry:   registry,
		dispatcher: dispatcher,
		maxRounds:  opts.MaxToolRounds,
		logger:     slog.Default().With("component", "orchestrator"),
		obs:        metrics.NoopObserver{},
	}
}

// SetObserver enables round metrics on the orchestrator and its dispatcher.
func (o *Orchestrator) SetObserver(obs metrics.Observer) {
	if obs == nil {
		return
	}
	o.obs = obs
	o.dispatcher.SetObserver(obs)
}

// Ask runs one user message to completion and returns the final
// assistant text.
func (o *Orchestrator) Ask(ctx context.Context, userText string) (string, error) {
	conversationID := uuid.NewString()
	log := o.logger.With("conversation_id", conversationID)

	messages := []llm.Message{llm.UserMessage(userText)}
	offer := o.registry.Tools()

	for round := 0; ; round++ {
		input := llm.Context{Messages: messages}
		if round == 0 {
			// Tools are offered once; follow-up requests only carry results.
			input.Tools = offer
		}

		start := time.Now()
		resp, err := o.adapter.Generate(ctx, input)
		if err != nil {
			log.Error("chat_send_failed", "round", round, "error", err)
			return "", o.classify(err)
		}
		o.recordRound(round, len(resp.ToolCalls), time.Since(start))
		log.Debug("chat_round_done",
			"round", round,
			"tool_calls", len(resp.ToolCalls),
			"finish_reason", resp.FinishReason,
		)

		if !resp.HasToolCalls() || round >= o.maxRounds {
			return resp.Text, nil
		}

		results := o.dispatcher.Execute(ctx, resp.ToolCalls)

		// Derive the follow-up conversation: the history as sent, the
		// assistant turn exactly as received, then one tool message per
		// result in dispatcher order.
		next := make([]llm.Message, 0, len(messages)+1+len(results))
		next = append(next, messages...)
		next = append(next, resp.Message)
		for _, res := range results {
			next = append(next, llm.ToolResultMessage(res.ID, res.Content))
		}
		messages = next
	}
}

func (o *Orchestrator) classify(err error) error {
	switch {
	case resilience.IsRateLimit(err):
		return errorsx.Wrap(err, errorsx.ReasonChatRateLimit)
	default:
		return errorsx.Wrap(err, errorsx.ReasonChatSend)
	}
}

func (o *Orchestrator) recordRound(round, toolCalls int, elapsed time.Duration) {
	o.obs.RecordEvent(metrics.Event{
		Name:  metrics.EventChatRound,
		Time:  time.Now(),
		Value: float64(elapsed.Milliseconds()),
		Tags:  map[string]string{"provider": o.adapter.Name()},
		Fields: map[string]any{
			"round":      round,
			"tool_calls": toolCalls,
		},
	})
}
