package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"tilechat/chat"
	"tilechat/config"
)

// OllamaProvider is the local-model adapter. The internal request maps
// close to verbatim onto Ollama's /api/chat: tool-call arguments are
// native JSON objects in both directions and no tool_choice hint exists.
// Streaming is always forced off so a single JSON object comes back.
type OllamaProvider struct {
	baseURL string
	client  *http.Client
}

// NewOllamaProvider creates the local adapter. baseURL defaults to the
// stock Ollama address.
func NewOllamaProvider(baseURL string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Send implements chat.Provider.
func (p *OllamaProvider) Send(ctx context.Context, req *chat.Request) (*chat.Response, error) {
	// Force non-streaming regardless of caller intent.
	stream := false
	payload := &api.ChatRequest{
		Model:    req.Model,
		Messages: toOllamaMessages(req.Messages),
		Tools:    toOllamaTools(req.Tools),
		Stream:   &stream,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Ollama] %s returned %d", p.baseURL, resp.StatusCode)
		}
		return nil, &TransportError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	// encoding/json matches field names case-insensitively, which also
	// covers backends that vary response casing.
	var out api.ChatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Ollama] undecodable response: %v", err)
		}
		return nil, &DecodeError{Reason: "ollama chat response", Err: err}
	}

	return fromOllamaResponse(&out), nil
}

func fromOllamaResponse(out *api.ChatResponse) *chat.Response {
	return &chat.Response{
		Message: chat.Message{
			Role:      out.Message.Role,
			Content:   out.Message.Content,
			ToolCalls: fromOllamaToolCalls(out.Message.ToolCalls),
		},
		Done:       out.Done,
		DoneReason: out.DoneReason,
		Model:      out.Model,
		CreatedAt:  out.CreatedAt,
		Usage: chat.Usage{
			PromptTokens:     out.Metrics.PromptEvalCount,
			CompletionTokens: out.Metrics.EvalCount,
			TotalTokens:      out.Metrics.PromptEvalCount + out.Metrics.EvalCount,
		},
	}
}
