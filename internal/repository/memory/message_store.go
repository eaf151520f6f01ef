package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// MessageStore is an in-process implementation of the live message store
// contract: appends notify every active subscriber with the full ordered
// list. Used in tests and for local development without Firestore.
type MessageStore struct {
	mu          sync.Mutex
	messages    map[string][]domain.ChatMessage
	subscribers map[string]map[int]func(messages []domain.ChatMessage)
	nextSubID   int
	profiles    map[string]domain.UserProfile
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages:    make(map[string][]domain.ChatMessage),
		subscribers: make(map[string]map[int]func(messages []domain.ChatMessage)),
		profiles:    make(map[string]domain.UserProfile),
	}
}

func (s *MessageStore) AppendMessage(_ context.Context, conversationID string, msg *domain.ChatMessage) error {
	s.mu.Lock()

	stored := *msg
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now()
	}
	s.messages[conversationID] = append(s.messages[conversationID], stored)

	snapshot := s.snapshotLocked(conversationID)
	callbacks := make([]func(messages []domain.ChatMessage), 0, len(s.subscribers[conversationID]))
	for _, cb := range s.subscribers[conversationID] {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may re-enter the store.
	for _, cb := range callbacks {
		cb(snapshot)
	}
	return nil
}

func (s *MessageStore) Subscribe(conversationID string, onUpdate func(messages []domain.ChatMessage)) repository.UnsubscribeFunc {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[conversationID] == nil {
		s.subscribers[conversationID] = make(map[int]func(messages []domain.ChatMessage))
	}
	s.subscribers[conversationID][id] = onUpdate
	snapshot := s.snapshotLocked(conversationID)
	s.mu.Unlock()

	// Initial delivery with the current snapshot.
	onUpdate(snapshot)

	return func() {
		s.mu.Lock()
		delete(s.subscribers[conversationID], id)
		s.mu.Unlock()
	}
}

func (s *MessageStore) SaveUserProfile(_ context.Context, profile *domain.UserProfile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	stored := *profile
	stored.ID = id
	stored.CreatedAt = time.Now()
	s.profiles[id] = stored
	return id, nil
}

// Messages returns the current ordered list for a conversation.
func (s *MessageStore) Messages(conversationID string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(conversationID)
}

func (s *MessageStore) snapshotLocked(conversationID string) []domain.ChatMessage {
	msgs := s.messages[conversationID]
	snapshot := make([]domain.ChatMessage, len(msgs))
	copy(snapshot, msgs)
	return snapshot
}
