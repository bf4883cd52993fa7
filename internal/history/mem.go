package history

import (
	"sync"

	"github.com/ctxkit/ctxkit/pkg/chat"
)

// conversationData holds the messages and summary for a single conversation.
type conversationData struct {
	messages chat.Context
	summary  string
}

// MemStore is a thread-safe, in-memory implementation of Store.
type MemStore struct {
	mu            sync.RWMutex
	conversations map[string]*conversationData
}

// NewMemStore creates a new empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		conversations: make(map[string]*conversationData),
	}
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

func (s *MemStore) getOrCreate(conversationID string) *conversationData {
	cd, ok := s.conversations[conversationID]
	if !ok {
		cd = &conversationData{}
		s.conversations[conversationID] = cd
	}
	return cd
}

// Append adds a message to the conversation's history.
func (s *MemStore) Append(conversationID string, msg chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cd := s.getOrCreate(conversationID)
	cd.messages = append(cd.messages, msg.Clone())
	return nil
}

// Context returns the conversation's full message history.
func (s *MemStore) Context(conversationID string) (chat.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cd, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil
	}
	return cd.messages.Clone(), nil
}

// Recent returns the n most recent messages for a conversation.
func (s *MemStore) Recent(conversationID string, n int) (chat.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cd, ok := s.conversations[conversationID]
	if !ok || n <= 0 {
		return nil, nil
	}

	msgs := cd.messages
	if n < len(msgs) {
		msgs = msgs[len(msgs)-n:]
	}
	return msgs.Clone(), nil
}

// SetSummary stores the latest compaction summary for a conversation.
func (s *MemStore) SetSummary(conversationID, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(conversationID).summary = summary
	return nil
}

// Summary returns the stored summary for a conversation.
func (s *MemStore) Summary(conversationID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cd, ok := s.conversations[conversationID]
	if !ok {
		return "", nil
	}
	return cd.summary, nil
}

// Purge removes all history and summary for a conversation.
func (s *MemStore) Purge(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
	return nil
}

// Len returns the number of messages stored for a conversation.
func (s *MemStore) Len(conversationID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cd, ok := s.conversations[conversationID]
	if !ok {
		return 0, nil
	}
	return len(cd.messages), nil
}
