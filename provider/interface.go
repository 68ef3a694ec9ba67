// Package provider implements the two chat-completion adapters.
//
// tilechat talks to two structurally different wire formats: a local
// Ollama server (/api/chat, tool-call arguments as native JSON objects)
// and a hosted OpenAI-compatible API (/chat/completions, tool-call
// arguments string-encoded, tool_choice required when tools are present).
// Each adapter translates the internal chat.Request/chat.Response pair to
// and from its own format; nothing outside this package knows either wire
// shape.
//
// Both adapters force non-streaming, single-shot responses regardless of
// what the caller asked for.
//
// Note: the Provider interface itself is defined in the chat package
// (chat/provider.go) to avoid an import cycle. This package implements
// chat.Provider.
package provider

// ProviderType identifies the adapter implementation.
type ProviderType string

const (
	ProviderTypeOllama ProviderType = "ollama"
	ProviderTypeOpenAI ProviderType = "openai"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	APIKey  string // hosted adapter only
}
