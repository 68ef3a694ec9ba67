package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tilechat/config"
)

// ManagerConfig tunes orchestration behavior.
type ManagerConfig struct {
	// DefaultModel is used when Send is called with an empty model name.
	DefaultModel string

	// HostedMarkers are lowercase substrings of model names that route to
	// the hosted provider. Anything else routes to the local provider.
	HostedMarkers []string
}

// Manager drives one chat turn end to end: build the request, call the
// selected provider, execute a requested tool, and make exactly one
// continuation call for the final answer.
//
// A single conversation is processed by at most one in-flight Send at a
// time from the caller's perspective; the Manager performs no internal
// retry, queueing or cancellation of its own.
type Manager struct {
	history *History
	tools   ToolRunner
	screen  ScreenContext
	local   Provider
	hosted  Provider
	cfg     ManagerConfig
}

// NewManager wires the orchestrator. screen may be nil when no surface
// host exists (for example in tests); hosted may be nil when only a local
// backend is configured, in which case all models route locally.
func NewManager(history *History, tools ToolRunner, screen ScreenContext, local, hosted Provider, cfg ManagerConfig) *Manager {
	if len(cfg.HostedMarkers) == 0 {
		cfg.HostedMarkers = []string{"gpt"}
	}
	return &Manager{
		history: history,
		tools:   tools,
		screen:  screen,
		local:   local,
		hosted:  hosted,
		cfg:     cfg,
	}
}

// providerFor selects the adapter by model-name heuristic: hosted-provider
// model families are recognized by substring, everything else is assumed
// to be served by the local backend.
func (m *Manager) providerFor(model string) Provider {
	if m.hosted == nil {
		return m.local
	}
	lower := strings.ToLower(model)
	for _, marker := range m.cfg.HostedMarkers {
		if strings.Contains(lower, marker) {
			return m.hosted
		}
	}
	return m.local
}

// Send runs one turn for the given conversation and returns the final
// assistant text. An empty model name selects the configured default.
//
// When the response carries tool calls, only the first call is executed;
// any further calls in the same response are recorded but not run.
func (m *Manager) Send(ctx context.Context, chatID, text, model string) (string, error) {
	if model == "" {
		model = m.cfg.DefaultModel
	}
	prov := m.providerFor(model)

	m.history.GetOrCreate(chatID)
	m.history.Append(chatID, Message{Role: RoleUser, Content: text})

	resp, err := m.callProvider(ctx, prov, chatID, model)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Manager] chat %s: provider call failed: %v", chatID, err)
		}
		return "", err
	}
	m.history.MaybeReinforce(chatID)

	if len(resp.Message.ToolCalls) == 0 {
		m.history.Append(chatID, Message{Role: RoleAssistant, Content: resp.Message.Content})
		return resp.Message.Content, nil
	}

	// Record the raw tool-call list, then execute the first call only.
	m.history.Append(chatID, Message{Role: RoleAssistant, ToolCalls: resp.Message.ToolCalls})

	call := resp.Message.ToolCalls[0]
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Manager] chat %s: executing tool %s (%d call(s) in response)",
			chatID, call.Name, len(resp.Message.ToolCalls))
	}
	result, err := m.tools.Run(ctx, call.Name, call.Arguments)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Manager] chat %s: tool %s failed: %v", chatID, call.Name, err)
		}
		return "", fmt.Errorf("tool %s: %w", call.Name, err)
	}
	m.history.Append(chatID, Message{Role: RoleSystem, Content: result})
	m.history.Append(chatID, Message{Role: RoleSystem, Content: ToolFollowUpPrompt()})

	cont, err := m.callProvider(ctx, prov, chatID, model)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Manager] chat %s: continuation call failed: %v", chatID, err)
		}
		return "", err
	}
	m.history.Append(chatID, Message{Role: RoleAssistant, Content: cont.Message.Content})
	return cont.Message.Content, nil
}

// callProvider builds a request from current history plus advertised tools
// and performs one provider call. The on-screen context is injected as an
// ephemeral system message for the duration of the call and revoked before
// returning, so it never persists.
func (m *Manager) callProvider(ctx context.Context, prov Provider, chatID, model string) (*Response, error) {
	defs := m.tools.Definitions()

	if m.screen != nil {
		if desc, ok := m.screen.ActiveContext(); ok {
			token := m.history.InjectEphemeral(chatID, Message{
				Role:    RoleSystem,
				Content: desc,
			})
			defer m.history.RevokeEphemeral(token)
		}
	}

	req := &Request{
		Model:    model,
		Messages: m.history.Messages(chatID),
		Tools:    defs,
		Stream:   false,
	}
	if len(defs) > 0 {
		req.ToolChoice = "auto"
	}

	start := time.Now()
	resp, err := prov.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Manager] chat %s: %s answered in %s (done=%v reason=%q tools=%d)",
			chatID, model, time.Since(start).Round(time.Millisecond),
			resp.Done, resp.DoneReason, len(resp.Message.ToolCalls))
	}
	return resp, nil
}
