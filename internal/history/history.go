// Package history provides persistence for conversation state. A Context is
// constructed from a conversation's stored messages once per model-call
// preparation step, flows through the transformer pipeline, and is discarded.
package history

import (
	"github.com/google/uuid"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

// NewConversationID returns a fresh unique conversation identifier.
func NewConversationID() string {
	return uuid.NewString()
}

// Store manages persisted conversation state.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append adds a message to the conversation's history.
	Append(conversationID string, msg chat.Message) error

	// Context returns the conversation's full message history in
	// chronological order, as the Context for one model call.
	Context(conversationID string) (chat.Context, error)

	// Recent returns the n most recent messages for a conversation.
	// If fewer than n messages exist, all messages are returned.
	Recent(conversationID string, n int) (chat.Context, error)

	// SetSummary stores the latest compaction summary for a conversation,
	// replacing any previous one.
	SetSummary(conversationID, summary string) error

	// Summary returns the stored summary for a conversation.
	// Returns an empty string if no summary exists.
	Summary(conversationID string) (string, error)

	// Purge removes all history and summary for a conversation.
	Purge(conversationID string) error

	// Len returns the number of messages stored for a conversation.
	Len(conversationID string) (int, error)
}
