package chat

import (
	"context"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Request is the provider-neutral chat request. Providers translate it
// into their own wire format. Stream is carried for completeness but every
// provider forces it to false before sending.
type Request struct {
	Model      string
	Messages   []Message
	Tools      []mcptypes.Tool
	ToolChoice string
	Stream     bool
}

// Response is the provider-neutral chat response. Model, CreatedAt and
// Usage are advisory metadata only.
type Response struct {
	Message    Message
	Done       bool
	DoneReason string
	Model      string
	CreatedAt  time.Time
	Usage      Usage
}

// Provider abstracts a chat-completion backend (local Ollama server,
// hosted OpenAI-compatible API).
//
// The interface is defined here rather than in the provider package to
// avoid an import cycle: provider implementations import chat for the
// request/response types, and the Manager uses Provider without importing
// the provider package.
type Provider interface {
	// Send performs one blocking, non-streaming chat completion.
	// It fails with provider.TransportError on a non-success HTTP status
	// and provider.DecodeError when the response body cannot be parsed.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// ToolRunner is the Manager's view of the tool registry and executor.
// Implemented by tool.Service.
type ToolRunner interface {
	// Definitions lists the currently advertised tools: the baseline set
	// followed by tools contributed by active surfaces.
	Definitions() []mcptypes.Tool

	// Run executes a tool by name and returns the textual result that is
	// appended to history. Unknown names and business outcomes such as
	// "no note to save" are successful results, not errors.
	Run(ctx context.Context, name string, args map[string]any) (string, error)
}

// ScreenContext describes what the user currently sees so it can be
// injected into a request as an ephemeral system message. Implemented by
// tile.Service.
type ScreenContext interface {
	// ActiveContext returns a description of the active surfaces and
	// false when nothing is on screen.
	ActiveContext() (string, bool)
}
