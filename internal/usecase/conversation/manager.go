package conversation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// Manager is the in-session conversation aggregator. It owns the list of
// conversations, merges live subscription updates into them, and enforces
// at-most-one active store subscription per open chat room.
type Manager struct {
	store   repository.MessageStore
	catalog repository.CatalogRepository

	mu            sync.Mutex
	conversations map[string]*domain.ChatConversation
	subs          map[string]*subscription

	now func() time.Time
}

type subscription struct {
	cancel repository.UnsubscribeFunc
}

func NewManager(store repository.MessageStore, catalog repository.CatalogRepository) *Manager {
	return &Manager{
		store:         store,
		catalog:       catalog,
		conversations: make(map[string]*domain.ChatConversation),
		subs:          make(map[string]*subscription),
		now:           time.Now,
	}
}

// SetClock overrides the wall clock used for summary timestamps. Test hook.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// LookupOrCreate returns the conversation for a match, creating it on first
// use. Idempotent: the conversation identifier is a stable function of the
// match identifier and at most one conversation exists per match.
func (m *Manager) LookupOrCreate(ctx context.Context, matchID string) (*domain.ChatConversation, error) {
	match, err := m.catalog.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	id := domain.ConversationID(matchID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if conv, ok := m.conversations[id]; ok {
		return copyConversation(conv), nil
	}

	now := m.now()
	conv := &domain.ChatConversation{
		ID:            id,
		Match:         *match,
		LastMessage:   domain.PlaceholderLastMessage,
		LastTimestamp: now,
		Messages:      nil,
		CreatedAt:     now,
	}
	m.conversations[id] = conv
	return copyConversation(conv), nil
}

// Get returns a snapshot of one conversation.
func (m *Manager) Get(conversationID string) (*domain.ChatConversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[conversationID]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return copyConversation(conv), nil
}

// List returns snapshots of all conversations, most recent activity first.
func (m *Manager) List() []*domain.ChatConversation {
	m.mu.Lock()
	out := make([]*domain.ChatConversation, 0, len(m.conversations))
	for _, conv := range m.conversations {
		out = append(out, copyConversation(conv))
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastTimestamp.After(out[j].LastTimestamp)
	})
	return out
}

// ApplyUpdate replaces a conversation's message list with a subscription
// snapshot and recomputes the summary fields: LastMessage is the text of the
// final element (prior value kept when the list is empty) and LastTimestamp
// is the update's arrival time, not the tail message's own timestamp.
func (m *Manager) ApplyUpdate(conversationID string, messages []domain.ChatMessage) (*domain.ChatConversation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[conversationID]
	if !ok {
		// Update arrived after the conversation was cleared; drop it.
		return nil, false
	}

	conv.Messages = make([]domain.ChatMessage, len(messages))
	copy(conv.Messages, messages)
	conv.LastMessage = projectLastMessage(conv.LastMessage, conv.Messages)
	conv.LastTimestamp = m.now()

	return copyConversation(conv), true
}

// OpenRoom attaches the live store feed for an open chat room. Updates are
// merged via ApplyUpdate and then handed to onUpdate with the refreshed
// snapshot. Opening a room that is already open replaces the previous
// registration. The returned release func detaches the feed; callers must
// invoke it on every exit path.
func (m *Manager) OpenRoom(conversationID string, onUpdate func(conv *domain.ChatConversation)) (repository.UnsubscribeFunc, error) {
	m.mu.Lock()
	if _, ok := m.conversations[conversationID]; !ok {
		m.mu.Unlock()
		return nil, domain.ErrConversationNotFound
	}
	prev := m.subs[conversationID]
	delete(m.subs, conversationID)
	m.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}

	// Subscribe outside the lock: the store delivers the initial snapshot
	// synchronously and the callback re-enters the manager.
	cancel := m.store.Subscribe(conversationID, func(messages []domain.ChatMessage) {
		updated, ok := m.ApplyUpdate(conversationID, messages)
		if ok && onUpdate != nil {
			onUpdate(updated)
		}
	})

	sub := &subscription{cancel: cancel}
	m.mu.Lock()
	m.subs[conversationID] = sub
	m.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			m.mu.Lock()
			if m.subs[conversationID] == sub {
				delete(m.subs, conversationID)
			}
			m.mu.Unlock()
			cancel()
		})
	}
	return release, nil
}

// Reset discards all in-memory conversation state and releases every active
// subscription. Idempotent.
func (m *Manager) Reset() {
	m.mu.Lock()
	subs := make([]*subscription, 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.subs = make(map[string]*subscription)
	m.conversations = make(map[string]*domain.ChatConversation)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.cancel()
	}
}

// projectLastMessage derives the summary text from the full list so the
// cache can never drift from the true tail.
func projectLastMessage(prev string, messages []domain.ChatMessage) string {
	if len(messages) == 0 {
		return prev
	}
	return messages[len(messages)-1].Text
}

func copyConversation(conv *domain.ChatConversation) *domain.ChatConversation {
	out := *conv
	out.Messages = make([]domain.ChatMessage, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}
