package chat

import (
	"sync"
	"time"
)

// ReinforcePolicy controls when a reinforcement system message is appended
// to a conversation. After a conversation grows past After messages, a
// reminder is appended whenever the message count is divisible by Every.
type ReinforcePolicy struct {
	After int
	Every int
}

// DefaultReinforcePolicy returns the stock cadence: past 10 messages,
// every 5th message.
func DefaultReinforcePolicy() ReinforcePolicy {
	return ReinforcePolicy{After: 10, Every: 5}
}

// ShouldReinforce reports whether a conversation with count persisted
// messages is due for a reinforcement message.
func (p ReinforcePolicy) ShouldReinforce(count int) bool {
	if p.Every <= 0 {
		return false
	}
	return count > p.After && count%p.Every == 0
}

// EphemeralToken identifies an injected ephemeral message so it can be
// revoked after the provider call.
type EphemeralToken struct {
	chatID string
	seq    uint64
}

type historyEntry struct {
	msg Message
	eph uint64 // 0 for persisted messages
}

// History is the per-conversation message store. Message order is the
// exact order presented to providers; nothing is reordered or summarized,
// and growth is unbounded.
//
// The mutex guards the conversation map itself. Turns against a single
// conversation are assumed single-writer; concurrent Sends against the
// same conversation id are out of scope.
type History struct {
	mu            sync.Mutex
	conversations map[string][]historyEntry
	policy        ReinforcePolicy
	nextEph       uint64
}

// NewHistory creates an empty store with the given reinforcement policy.
func NewHistory(policy ReinforcePolicy) *History {
	return &History{
		conversations: make(map[string][]historyEntry),
		policy:        policy,
	}
}

// GetOrCreate ensures a conversation exists. A new conversation is seeded
// with the fixed system prompt, so the first persisted message of every
// conversation is always that prompt. Returns true when the conversation
// was created by this call.
func (h *History) GetOrCreate(chatID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conversations[chatID]; ok {
		return false
	}
	h.conversations[chatID] = []historyEntry{{
		msg: Message{Role: RoleSystem, Content: SystemPrompt(), Timestamp: time.Now()},
	}}
	return true
}

// Append adds a persisted message to a conversation, stamping it when the
// caller did not.
func (h *History) Append(chatID string, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	h.conversations[chatID] = append(h.conversations[chatID], historyEntry{msg: msg})
}

// Messages returns a copy of the conversation in presentation order,
// including any currently injected ephemeral messages.
func (h *History) Messages(chatID string) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.conversations[chatID]
	out := make([]Message, len(entries))
	for i, e := range entries {
		out[i] = e.msg
	}
	return out
}

// Len returns the number of persisted messages, excluding ephemeral
// injections.
func (h *History) Len(chatID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, e := range h.conversations[chatID] {
		if e.eph == 0 {
			n++
		}
	}
	return n
}

// InjectEphemeral appends a message that will be presented to the provider
// but must never persist in history. The returned token revokes it.
func (h *History) InjectEphemeral(chatID string, msg Message) EphemeralToken {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextEph++
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	h.conversations[chatID] = append(h.conversations[chatID], historyEntry{msg: msg, eph: h.nextEph})
	return EphemeralToken{chatID: chatID, seq: h.nextEph}
}

// RevokeEphemeral removes a previously injected ephemeral message.
// Revoking an already-revoked token is a no-op.
func (h *History) RevokeEphemeral(token EphemeralToken) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.conversations[token.chatID]
	for i, e := range entries {
		if e.eph == token.seq {
			h.conversations[token.chatID] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// MaybeReinforce appends the reinforcement system message when the
// conversation has reached the policy's cadence. Evaluated once per
// completed provider response. Returns true when a message was appended.
func (h *History) MaybeReinforce(chatID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, e := range h.conversations[chatID] {
		if e.eph == 0 {
			n++
		}
	}
	if !h.policy.ShouldReinforce(n) {
		return false
	}
	h.conversations[chatID] = append(h.conversations[chatID], historyEntry{
		msg: Message{Role: RoleSystem, Content: ReinforcementPrompt(), Timestamp: time.Now()},
	})
	return true
}
