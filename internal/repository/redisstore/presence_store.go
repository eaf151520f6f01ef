package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nearchat/nearchat-backend/internal/repository"
)

const (
	// typingTTL bounds a stale typing flag if a reply leg dies without
	// cleaning up.
	typingTTL = 30 * time.Second
	lockTTL   = 60 * time.Second
)

// PresenceStore keeps typing indicators and reply locks in Redis.
type PresenceStore struct {
	client *redis.Client
}

func NewPresenceStore(client *redis.Client) repository.PresenceStore {
	return &PresenceStore{client: client}
}

func typingKey(conversationID string) string {
	return "nearchat:typing:" + conversationID
}

func lockKey(conversationID string) string {
	return "nearchat:replylock:" + conversationID
}

func (s *PresenceStore) SetTyping(ctx context.Context, conversationID string) error {
	return s.client.Set(ctx, typingKey(conversationID), "1", typingTTL).Err()
}

func (s *PresenceStore) ClearTyping(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, typingKey(conversationID)).Err()
}

func (s *PresenceStore) IsTyping(ctx context.Context, conversationID string) (bool, error) {
	n, err := s.client.Exists(ctx, typingKey(conversationID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PresenceStore) AcquireReplyLock(ctx context.Context, conversationID string) (bool, error) {
	return s.client.SetNX(ctx, lockKey(conversationID), "1", lockTTL).Result()
}

func (s *PresenceStore) ReleaseReplyLock(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, lockKey(conversationID)).Err()
}
