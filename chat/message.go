package chat

import "time"

// Roles used in conversation history. Tool results are carried as system
// messages so that both wire formats accept them unchanged.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents one turn in a conversation. A message carries either
// text content or a list of tool calls; an assistant turn that invokes a
// tool has empty content.
type Message struct {
	Role      string
	Content   string
	ToolCalls []ToolCall
	Timestamp time.Time
}

// ToolCall is a single invocation requested by the model. Arguments are
// always a decoded JSON object; providers that string-encode arguments on
// the wire decode them before constructing a ToolCall. ID is the
// provider-assigned correlation id and is empty for providers that do not
// assign one.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Usage carries advisory token counts from a provider response. It is
// never used in control decisions.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
