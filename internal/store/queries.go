package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"textdigest/internal/llm"
)

// Session is one persisted conversation.
type Session struct {
	ID           int64
	Name         string
	SystemPrompt string
	CreatedAt    time.Time
}

// ErrSessionNotFound is returned when a named session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// GetOrCreateSession returns the session with the given name, creating it
// with the given system prompt when missing. The prompt of an existing
// session is left untouched.
func (s *Store) GetOrCreateSession(
	ctx context.Context,
	name string,
	systemPrompt string,
) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("session name is empty")
	}

	query := "insert or ignore into sessions (name, system_prompt) values (?, ?)"

	if _, err := s.db.ExecContext(ctx, query, name, systemPrompt); err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return s.getSession(ctx, name)
}

func (s *Store) getSession(ctx context.Context, name string) (*Session, error) {
	query := "select id, name, system_prompt, created_at from sessions where name = ?"

	var sess Session
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&sess.ID,
		&sess.Name,
		&sess.SystemPrompt,
		&sess.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	return &sess, nil
}

// AppendMessage records one message of a session.
func (s *Store) AppendMessage(
	ctx context.Context,
	sessionID int64,
	message llm.Message,
) error {
	if strings.TrimSpace(message.Content) == "" {
		return errors.New("message content is empty")
	}

	query := "insert into messages (session_id, role, content) values (?, ?, ?)"

	_, err := s.db.ExecContext(ctx, query, sessionID, string(message.Role), message.Content)

	return err
}

// GetMessages returns a session's history in insertion order.
func (s *Store) GetMessages(
	ctx context.Context,
	sessionID int64,
) ([]llm.Message, error) {
	query := "select role, content from messages where session_id = ? order by id"

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			s.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"sessionID", sessionID,
				"operation", "GetMessages")
		}
	}()

	var messages []llm.Message
	for rows.Next() {
		var role, content string
		if err = rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		messages = append(messages, llm.Message{
			Role:    llm.Role(role),
			Content: content,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return messages, nil
}

// ResetSession deletes all messages of a session, keeping the session row.
func (s *Store) ResetSession(ctx context.Context, sessionID int64) error {
	query := "delete from messages where session_id = ?"

	_, err := s.db.ExecContext(ctx, query, sessionID)

	return err
}

// DeleteSession removes a session and its messages.
func (s *Store) DeleteSession(ctx context.Context, name string) error {
	sess, err := s.getSession(ctx, name)
	if err != nil {
		return err
	}

	if err = s.ResetSession(ctx, sess.ID); err != nil {
		return err
	}

	query := "delete from sessions where id = ?"

	_, err = s.db.ExecContext(ctx, query, sess.ID)

	return err
}

// ListSessions returns all sessions ordered by creation time.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	query := "select id, name, system_prompt, created_at from sessions order by created_at"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			s.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"operation", "ListSessions")
		}
	}()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err = rows.Scan(&sess.ID, &sess.Name, &sess.SystemPrompt, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		sessions = append(sessions, sess)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return sessions, nil
}
