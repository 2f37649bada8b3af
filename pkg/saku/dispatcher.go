package saku

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/harunnryd/saku/pkg/llm"
	"github.com/harunnryd/saku/pkg/metrics"
	"github.com/harunnryd/saku/pkg/redact"
	"github.com/harunnryd/saku/pkg/resilience"
	"github.com/harunnryd/saku/pkg/tools"
)

// Result statuses. Error and timeout results still carry model-facing
// text: the model sees a conversational error, never a protocol failure.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

var ErrToolTimeout = errors.New("tool timeout")

// ToolResult is the outcome of one tool call. ID always matches the
// originating request so the follow-up conversation can be reassembled
// regardless of completion order.
type ToolResult struct {
	ID      string
	Name    string
	Content string
	Status  string
	Err     error
}

// OK reports whether the tool ran without error.
func (r ToolResult) OK() bool { return r.Status == StatusOK }

type ToolDispatcherOptions struct {
	Concurrency  int
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
}

// ToolDispatcher resolves tool calls against the registry, decodes
// arguments and invokes handlers. Every failure mode is downgraded to a
// textual result: one malformed call must not abort its siblings nor the
// conversation.
type ToolDispatcher struct {
	registry *tools.Registry
	opts     ToolDispatcherOptions
	logger   *slog.Logger
	obs      metrics.Observer
}

func NewToolDispatcher(registry *tools.Registry) *ToolDispatcher {
	return NewToolDispatcherWithOptions(registry, ToolDispatcherOptions{})
}

func NewToolDispatcherWithOptions(registry *tools.Registry, opts ToolDispatcherOptions) *ToolDispatcher {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 150 * time.Millisecond
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	return &ToolDispatcher{
		registry: registry,
		opts:     opts,
		logger:   slog.Default().With("component", "tool_dispatcher"),
		obs:      metrics.NoopObserver{},
	}
}

// SetObserver enables tool execution metrics.
func (d *ToolDispatcher) SetObserver(obs metrics.Observer) {
	if obs != nil {
		d.obs = obs
	}
}

// Execute runs every tool call from one assistant turn and returns the
// same-length result sequence. Results are stored by request index, so
// bounded parallel execution cannot reorder them.
func (d *ToolDispatcher) Execute(ctx context.Context, calls []llm.ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))
	if len(calls) == 0 {
		return results
	}

	workers := d.opts.Concurrency
	if workers > len(calls) {
		workers = len(calls)
	}
	if workers <= 1 {
		for i, call := range calls {
			results[i] = d.exec(ctx, call)
		}
		return results
	}

	var wg sync.WaitGroup
	indexes := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = d.exec(ctx, calls[i])
			}
		}()
	}
	for i := range calls {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return results
}

func (d *ToolDispatcher) exec(ctx context.Context, call llm.ToolCall) ToolResult {
	name := call.Function.Name
	result := ToolResult{ID: call.ID, Name: name, Status: StatusOK}
	start := time.Now()
	defer func() {
		d.record(name, result.Status, time.Since(start))
	}()

	spec, handler, err := d.registry.Lookup(name)
	if err != nil {
		d.logger.Warn("tool_unknown", "tool_name", name, "tool_call_id", call.ID)
		result.Status = StatusError
		result.Err = err
		result.Content = fmt.Sprintf("Error: Unknown tool: %s", name)
		return result
	}

	args, err := tools.DecodeArguments(spec, call.Function.Arguments)
	if err != nil {
		d.logger.Warn("tool_arguments_invalid", "tool_name", name, "error", err)
		result.Status = StatusError
		result.Err = err
		result.Content = fmt.Sprintf("Error executing tool: %v", err)
		return result
	}

	text, err := d.callWithRetry(ctx, handler, args)
	if err != nil {
		status := StatusError
		if errors.Is(err, ErrToolTimeout) {
			status = StatusTimeout
		}
		d.logger.Warn("tool_exec_failed", "tool_name", name, "status", status, "error", err)
		result.Status = status
		result.Err = err
		result.Content = fmt.Sprintf("Error executing tool: %v", err)
		return result
	}

	d.logger.Debug("tool_exec_done",
		"tool_name", name,
		"tool_call_id", call.ID,
		"content", redact.Text(text),
	)
	result.Content = text
	return result
}

func (d *ToolDispatcher) callWithRetry(ctx context.Context, handler tools.Handler, args tools.Args) (string, error) {
	var out string
	policy := resilience.NewRetryPolicy(d.opts.Retries, d.opts.RetryBackoff)
	err := policy.Do(func() error {
		text, err := d.callWithTimeout(ctx, handler, args)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	return out, err
}

func (d *ToolDispatcher) callWithTimeout(ctx context.Context, handler tools.Handler, args tools.Args) (string, error) {
	if d.opts.Timeout <= 0 {
		return handler(ctx, args)
	}
	type outcome struct {
		text string
		err  error
	}
	callCtx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()
	ch := make(chan outcome, 1)
	go func() {
		text, err := handler(callCtx, args)
		ch <- outcome{text: text, err: err}
	}()
	select {
	case res := <-ch:
		return res.text, res.err
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", ErrToolTimeout
		}
		return "", callCtx.Err()
	}
}

func (d *ToolDispatcher) record(name, status string, elapsed time.Duration) {
	d.obs.RecordEvent(metrics.Event{
		Name:  metrics.EventToolExec,
		Time:  time.Now(),
		Value: float64(elapsed.Milliseconds()),
		Tags: map[string]string{
			"tool_name": name,
			"status":    status,
		},
	})
}
