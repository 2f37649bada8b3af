package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonConfig ReasonCode = "config"

	ReasonChatSend        ReasonCode = "chat_send"
	ReasonChatDecode      ReasonCode = "chat_decode"
	ReasonChatRateLimit   ReasonCode = "chat_rate_limit"
	ReasonChatCircuitOpen ReasonCode = "chat_circuit_open"

	ReasonToolUnknown   ReasonCode = "tool_unknown"
	ReasonToolArguments ReasonCode = "tool_arguments"
	ReasonToolExec      ReasonCode = "tool_exec"
	ReasonToolTimeout   ReasonCode = "tool_timeout"

	ReasonLookupSend ReasonCode = "lookup_send"
)
