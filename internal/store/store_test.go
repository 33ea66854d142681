package store

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"textdigest/internal/llm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "sessions.sqlite"), slog.Default())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := s.Close(); closeErr != nil {
			t.Errorf("failed to close store: %v", closeErr)
		}
	})

	return s
}

func TestGetOrCreateSessionIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.GetOrCreateSession(ctx, "notes", "be brief")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := s.GetOrCreateSession(ctx, "notes", "different prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same session, got IDs %d and %d", first.ID, second.ID)
	}

	if second.SystemPrompt != "be brief" {
		t.Fatalf("expected original system prompt to persist, got %q", second.SystemPrompt)
	}
}

func TestAppendAndGetMessagesPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.GetOrCreateSession(ctx, "notes", "be brief")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = s.AppendMessage(ctx, sess.ID, llm.User("question")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err = s.AppendMessage(ctx, sess.ID, llm.Assistant("answer")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages, err := s.GetMessages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(messages))
	}

	if messages[0].Role != llm.RoleUser || messages[0].Content != "question" {
		t.Fatalf("unexpected first message: %+v", messages[0])
	}

	if messages[1].Role != llm.RoleAssistant || messages[1].Content != "answer" {
		t.Fatalf("unexpected second message: %+v", messages[1])
	}
}

func TestResetSessionClearsMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.GetOrCreateSession(ctx, "notes", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = s.AppendMessage(ctx, sess.ID, llm.User("question")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = s.ResetSession(ctx, sess.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages, err := s.GetMessages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(messages) != 0 {
		t.Fatalf("expected no messages after reset, got %d", len(messages))
	}

	if _, err = s.GetOrCreateSession(ctx, "notes", ""); err != nil {
		t.Fatalf("expected session row to survive reset, got %v", err)
	}
}

func TestDeleteSessionRemovesSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetOrCreateSession(ctx, "doomed", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteSession(ctx, "doomed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteSession(ctx, "doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta"} {
		if _, err := s.GetOrCreateSession(ctx, name, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sessions, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sessions) != 2 {
		t.Fatalf("expected two sessions, got %d", len(sessions))
	}
}
