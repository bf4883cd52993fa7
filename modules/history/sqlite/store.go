package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/ctxkit/ctxkit/internal/history"
	"github.com/ctxkit/ctxkit/pkg/chat"
)

// store is the SQLite-backed history.Store. Messages are stored one per row
// as JSON, keyed by (conversation_id, seq) so chronological order survives.
type store struct {
	db *sql.DB
}

// Compile-time interface check.
var _ history.Store = (*store)(nil)

// Append adds a message to the conversation's history.
func (s *store) Append(conversationID string, msg chat.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("sqlite: marshal message: %w", err)
	}

	// Store interface does not carry context; use TODO as placeholder.
	_, err = s.db.ExecContext(context.TODO(), `
		INSERT INTO messages (conversation_id, seq, kind, body)
		VALUES (?, COALESCE((SELECT MAX(seq) FROM messages WHERE conversation_id = ?), 0) + 1, ?, ?)`,
		conversationID, conversationID, string(msg.Type), string(body),
	)
	if err != nil {
		return fmt.Errorf("sqlite: append message: %w", err)
	}
	return nil
}

// Context returns the conversation's full message history in chronological order.
func (s *store) Context(conversationID string) (chat.Context, error) {
	rows, err := s.db.QueryContext(context.TODO(), `
		SELECT body FROM messages
		WHERE conversation_id = ?
		ORDER BY seq ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: get context: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanMessages(rows)
}

// Recent returns the n most recent messages for a conversation.
func (s *store) Recent(conversationID string, n int) (chat.Context, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(context.TODO(), `
		SELECT body FROM messages
		WHERE conversation_id = ?
		ORDER BY seq DESC
		LIMIT ?`,
		conversationID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: get recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	msgs, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	// Reverse to chronological order.
	slices.Reverse(msgs)
	return msgs, nil
}

// SetSummary stores the latest compaction summary for a conversation.
func (s *store) SetSummary(conversationID, summary string) error {
	_, err := s.db.ExecContext(context.TODO(), `
		INSERT OR REPLACE INTO summaries (conversation_id, summary, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))`,
		conversationID, summary,
	)
	if err != nil {
		return fmt.Errorf("sqlite: set summary: %w", err)
	}
	return nil
}

// Summary returns the stored summary for a conversation.
func (s *store) Summary(conversationID string) (string, error) {
	var summary string
	err := s.db.QueryRowContext(context.TODO(),
		"SELECT summary FROM summaries WHERE conversation_id = ?", conversationID,
	).Scan(&summary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("sqlite: get summary: %w", err)
	}
	return summary, nil
}

// Purge removes all history and summary for a conversation.
func (s *store) Purge(conversationID string) error {
	tx, err := s.db.BeginTx(context.TODO(), nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin purge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(context.TODO(), "DELETE FROM messages WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("sqlite: purge messages: %w", err)
	}
	if _, err := tx.ExecContext(context.TODO(), "DELETE FROM summaries WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("sqlite: purge summaries: %w", err)
	}

	return tx.Commit()
}

// Len returns the number of messages stored for a conversation.
func (s *store) Len(conversationID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(context.TODO(),
		"SELECT COUNT(*) FROM messages WHERE conversation_id = ?", conversationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count messages: %w", err)
	}
	return count, nil
}

func scanMessages(rows *sql.Rows) (chat.Context, error) {
	var msgs chat.Context
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("sqlite: scan message: %w", err)
		}
		var msg chat.Message
		if err := json.Unmarshal([]byte(body), &msg); err != nil {
			return nil, fmt.Errorf("sqlite: unmarshal message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return msgs, nil
}
