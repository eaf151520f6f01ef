package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearchat/nearchat-backend/internal/domain"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	store := NewMessageStore()

	err := store.AppendMessage(context.Background(), "chat-1", &domain.ChatMessage{
		SenderID: domain.LocalUserSender,
		Text:     "hi",
	})
	require.NoError(t, err)

	msgs := store.Messages("chat-1")
	require.Len(t, msgs, 1)
	assert.NotEmpty(t, msgs[0].ID)
	assert.False(t, msgs[0].Timestamp.IsZero())
	assert.Equal(t, "hi", msgs[0].Text)
}

func TestAppendPreservesOrder(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, store.AppendMessage(ctx, "chat-1", &domain.ChatMessage{
			SenderID:  domain.LocalUserSender,
			Text:      text,
			Timestamp: time.Now(),
		}))
	}

	msgs := store.Messages("chat-1")
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.Equal(t, "third", msgs[2].Text)
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()
	require.NoError(t, store.AppendMessage(ctx, "chat-1", &domain.ChatMessage{SenderID: "1", Text: "hey"}))

	var updates [][]domain.ChatMessage
	release := store.Subscribe("chat-1", func(messages []domain.ChatMessage) {
		updates = append(updates, messages)
	})
	defer release()

	require.Len(t, updates, 1, "subscribing should deliver the current snapshot")
	require.Len(t, updates[0], 1)
	assert.Equal(t, "hey", updates[0][0].Text)
}

func TestSubscribeNotifiesOnAppend(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	var updates [][]domain.ChatMessage
	release := store.Subscribe("chat-1", func(messages []domain.ChatMessage) {
		updates = append(updates, messages)
	})
	defer release()

	require.NoError(t, store.AppendMessage(ctx, "chat-1", &domain.ChatMessage{SenderID: domain.LocalUserSender, Text: "one"}))
	require.NoError(t, store.AppendMessage(ctx, "chat-1", &domain.ChatMessage{SenderID: "1", Text: "two"}))

	require.Len(t, updates, 3)
	assert.Empty(t, updates[0])
	require.Len(t, updates[2], 2)
	assert.Equal(t, "two", updates[2][1].Text)
}

func TestSubscribeScopedToConversation(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	var updates int
	release := store.Subscribe("chat-1", func([]domain.ChatMessage) { updates++ })
	defer release()

	require.NoError(t, store.AppendMessage(ctx, "chat-2", &domain.ChatMessage{SenderID: "2", Text: "elsewhere"}))

	assert.Equal(t, 1, updates, "appends to other conversations should not notify")
}

func TestUnsubscribeStopsUpdates(t *testing.T) {
	store := NewMessageStore()
	ctx := context.Background()

	var updates int
	release := store.Subscribe("chat-1", func([]domain.ChatMessage) { updates++ })
	release()
	release() // releasing twice is harmless

	require.NoError(t, store.AppendMessage(ctx, "chat-1", &domain.ChatMessage{SenderID: "1", Text: "late"}))

	assert.Equal(t, 1, updates, "only the initial snapshot should have been delivered")
}

func TestSaveUserProfileAssignsID(t *testing.T) {
	store := NewMessageStore()

	id, err := store.SaveUserProfile(context.Background(), &domain.UserProfile{Nickname: "Sky"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestReplyLockIsExclusive(t *testing.T) {
	presence := NewPresenceStore()
	ctx := context.Background()

	acquired, err := presence.AcquireReplyLock(ctx, "chat-1")
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = presence.AcquireReplyLock(ctx, "chat-1")
	require.NoError(t, err)
	assert.False(t, acquired, "a held lock should not be granted again")

	require.NoError(t, presence.ReleaseReplyLock(ctx, "chat-1"))

	acquired, err = presence.AcquireReplyLock(ctx, "chat-1")
	require.NoError(t, err)
	assert.True(t, acquired, "releasing should make the lock available")
}

func TestTypingFlag(t *testing.T) {
	presence := NewPresenceStore()
	ctx := context.Background()

	typing, err := presence.IsTyping(ctx, "chat-1")
	require.NoError(t, err)
	assert.False(t, typing)

	require.NoError(t, presence.SetTyping(ctx, "chat-1"))
	typing, err = presence.IsTyping(ctx, "chat-1")
	require.NoError(t, err)
	assert.True(t, typing)

	require.NoError(t, presence.ClearTyping(ctx, "chat-1"))
	typing, err = presence.IsTyping(ctx, "chat-1")
	require.NoError(t, err)
	assert.False(t, typing)
}
