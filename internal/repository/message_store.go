package repository

import (
	"context"

	"github.com/nearchat/nearchat-backend/internal/domain"
)

// UnsubscribeFunc detaches a live subscription. After it returns, the
// callback is never invoked again. Safe to call more than once.
type UnsubscribeFunc func()

// MessageStore wraps the external realtime document store. Message
// collections are keyed by conversation identifier and ordered by creation
// timestamp ascending.
//
// In mock mode (store unavailable at startup) the no-op implementation is
// used: appends silently succeed without persistence and Subscribe returns a
// no-op unsubscribe. Callers must not depend on persistence in that mode.
type MessageStore interface {
	// AppendMessage appends a message to the conversation's ordered
	// collection. The backing store may replace the message identifier and
	// timestamp with server-assigned values.
	AppendMessage(ctx context.Context, conversationID string, msg *domain.ChatMessage) error

	// Subscribe establishes a live feed that invokes onUpdate with the full
	// ordered message list every time the collection changes, including
	// immediately with the current snapshot.
	Subscribe(conversationID string, onUpdate func(messages []domain.ChatMessage)) UnsubscribeFunc

	// SaveUserProfile writes a profile to the users collection with a
	// server-assigned creation time and returns the assigned identifier.
	SaveUserProfile(ctx context.Context, profile *domain.UserProfile) (string, error)
}
