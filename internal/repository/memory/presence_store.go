package memory

import (
	"context"
	"sync"

	"github.com/nearchat/nearchat-backend/internal/repository"
)

// PresenceStore is the in-process twin of the Redis presence store, used
// when no Redis is configured.
type PresenceStore struct {
	mu     sync.Mutex
	typing map[string]bool
	locks  map[string]bool
}

func NewPresenceStore() repository.PresenceStore {
	return &PresenceStore{
		typing: make(map[string]bool),
		locks:  make(map[string]bool),
	}
}

func (s *PresenceStore) SetTyping(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing[conversationID] = true
	return nil
}

func (s *PresenceStore) ClearTyping(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.typing, conversationID)
	return nil
}

func (s *PresenceStore) IsTyping(_ context.Context, conversationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing[conversationID], nil
}

func (s *PresenceStore) AcquireReplyLock(_ context.Context, conversationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[conversationID] {
		return false, nil
	}
	s.locks[conversationID] = true
	return true, nil
}

func (s *PresenceStore) ReleaseReplyLock(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, conversationID)
	return nil
}
