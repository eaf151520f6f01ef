package noop

import (
	"context"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// MessageStore is the Disconnected store handle ("mock mode"), selected once
// at startup when the document store is unavailable. Appends silently
// succeed without persistence and subscriptions never fire.
type MessageStore struct{}

func NewMessageStore() repository.MessageStore {
	return MessageStore{}
}

func (MessageStore) AppendMessage(context.Context, string, *domain.ChatMessage) error {
	return nil
}

func (MessageStore) Subscribe(string, func(messages []domain.ChatMessage)) repository.UnsubscribeFunc {
	return func() {}
}

func (MessageStore) SaveUserProfile(context.Context, *domain.UserProfile) (string, error) {
	return "mock-uid", nil
}
