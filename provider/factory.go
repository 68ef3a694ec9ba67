package provider

import (
	"fmt"

	"tilechat/chat"
)

// NewProvider creates an adapter from configuration. This is the single
// construction point for both adapter variants.
func NewProvider(cfg Config) (chat.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL), nil
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
