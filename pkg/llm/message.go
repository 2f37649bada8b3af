package llm

// Message roles on the chat completions wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry of the conversation history. Content is a pointer
// so an assistant turn that only carries tool calls can keep its content
// absent on the wire.
type Message struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Text returns the message content, empty when absent.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// ToolCall is a model-issued request to invoke a named tool. Arguments is
// a JSON-encoded string that must itself be parsed before dispatch.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type,omitempty"`
	Function ToolCallFunc `json:"function"`
}

type ToolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// UserMessage builds a user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: &text}
}

// AssistantMessage builds an assistant turn, mainly for scripted adapters
// in tests. Content stays absent when text is empty and tool calls are
// present.
func AssistantMessage(text string, calls []ToolCall) Message {
	msg := Message{Role: RoleAssistant, ToolCalls: calls}
	if text != "" || len(calls) == 0 {
		msg.Content = &text
	}
	return msg
}

// ToolResultMessage builds the tool turn that answers one tool call.
func ToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Content: &content}
}
