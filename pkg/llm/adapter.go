package llm

import "context"

// Tool is the declarative description of a callable tool as offered to the
// model. Schema holds the JSON-schema parameters object.
type Tool struct {
	Name        string
	Description string
	Schema      any
}

// Context is one outbound chat request: the conversation so far plus the
// tool set to offer. Tools is nil on follow-up requests after tools have
// already been offered and used.
type Context struct {
	Messages []Message
	Tools    []Tool
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is one assistant turn. Message carries the assistant message
// exactly as received so it can be appended back into the conversation;
// Text and ToolCalls are the consumed views of it.
type Response struct {
	Text         string
	Message      Message
	ToolCalls    []ToolCall
	FinishReason string
	Usage        Usage
}

// HasToolCalls reports whether the assistant turn requests tool execution.
func (r Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// ChatAdapter sends one chat request and returns the parsed assistant
// turn. Implementations hold no conversation state across calls.
type ChatAdapter interface {
	Generate(ctx context.Context, input Context) (Response, error)
	Name() string
}
