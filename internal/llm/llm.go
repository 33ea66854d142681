// Package llm wraps the remote generative API behind small interfaces so the
// rest of the tool can be exercised with stubs.
package llm

import (
	"context"
)

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a conversation history.
type Message struct {
	Role    Role
	Content string
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant builds an assistant message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Client sends a conversation to a remote text-generation endpoint and
// returns the model reply. Errors are returned as-is; there is no retry
// signal other than the reply itself.
type Client interface {
	Send(
		ctx context.Context,
		messages []Message,
		model string,
		temperature float64,
	) (string, error)
}
