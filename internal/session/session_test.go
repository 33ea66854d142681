package session

import (
	"testing"

	"textdigest/internal/llm"
)

func TestSessionMessagesIncludeSystemFirst(t *testing.T) {
	s := New("style prompt")
	s.AppendUser("block one")

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(messages))
	}

	if messages[0].Role != llm.RoleSystem || messages[0].Content != "style prompt" {
		t.Fatalf("expected system message first, got %+v", messages[0])
	}
}

func TestSessionWithoutSystemPrompt(t *testing.T) {
	s := New("")
	s.AppendUser("block one")

	messages := s.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %d", len(messages))
	}

	if messages[0].Role != llm.RoleUser {
		t.Fatalf("expected user message, got %+v", messages[0])
	}
}

func TestSessionPruneKeepsOnlyLatestAssistant(t *testing.T) {
	s := New("style prompt")

	for round := range 5 {
		s.AppendUser("block")
		s.AppendAssistant("summary")
		s.Prune()

		if got := s.TurnCount(); got != 1 {
			t.Fatalf("round %d: expected one turn after prune, got %d", round, got)
		}
	}

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected system plus one assistant, got %d messages", len(messages))
	}

	if messages[1].Role != llm.RoleAssistant {
		t.Fatalf("expected assistant turn, got %+v", messages[1])
	}
}

func TestSessionPruneWithoutAssistantClearsTurns(t *testing.T) {
	s := New("style prompt")
	s.AppendUser("block")
	s.Prune()

	if got := s.TurnCount(); got != 0 {
		t.Fatalf("expected no turns, got %d", got)
	}
}

func TestSessionResetClearsTurnsKeepsSystem(t *testing.T) {
	s := New("style prompt")
	s.AppendUser("block")
	s.AppendAssistant("summary")
	s.Reset()

	messages := s.Messages()
	if len(messages) != 1 || messages[0].Role != llm.RoleSystem {
		t.Fatalf("expected only system message after reset, got %+v", messages)
	}
}

func TestSessionMessagesReturnsCopy(t *testing.T) {
	s := New("style prompt")
	s.AppendUser("block")

	messages := s.Messages()
	messages[0].Content = "mutated"

	if got := s.Messages()[0].Content; got != "style prompt" {
		t.Fatalf("expected internal state to be unchanged, got %q", got)
	}
}
