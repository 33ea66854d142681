// Package session owns the conversation state passed to the remote endpoint.
// A Session is created, reset and discarded explicitly by the caller; there
// is no ambient process-wide state.
package session

import (
	"textdigest/internal/llm"
)

// Session is an ordered role-tagged message sequence with at most one system
// entry. It is not safe for concurrent use; the pipeline is single-writer.
type Session struct {
	system    string
	hasSystem bool
	turns     []llm.Message
	cache     *SummaryCache
}

// New builds a session. An empty systemPrompt means no system entry.
func New(systemPrompt string) *Session {
	return &Session{
		system:    systemPrompt,
		hasSystem: systemPrompt != "",
	}
}

// WithCache attaches a summary cache to the session and returns it.
func (s *Session) WithCache(cache *SummaryCache) *Session {
	s.cache = cache
	return s
}

// Cache returns the attached summary cache, or nil.
func (s *Session) Cache() *SummaryCache {
	return s.cache
}

// AppendUser records a user turn.
func (s *Session) AppendUser(content string) {
	s.turns = append(s.turns, llm.User(content))
}

// AppendAssistant records an assistant turn.
func (s *Session) AppendAssistant(content string) {
	s.turns = append(s.turns, llm.Assistant(content))
}

// Prune drops everything except the latest assistant turn, so context stays
// bounded no matter how many rounds have run. The system entry persists for
// the whole session.
func (s *Session) Prune() {
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == llm.RoleAssistant {
			s.turns = []llm.Message{s.turns[i]}
			return
		}
	}

	s.turns = nil
}

// Reset clears all turns, keeping only the system entry.
func (s *Session) Reset() {
	s.turns = nil
}

// Messages returns a copy of the full history in send order.
func (s *Session) Messages() []llm.Message {
	messages := make([]llm.Message, 0, len(s.turns)+1)
	if s.hasSystem {
		messages = append(messages, llm.System(s.system))
	}

	return append(messages, s.turns...)
}

// TurnCount returns the number of non-system entries.
func (s *Session) TurnCount() int {
	return len(s.turns)
}
