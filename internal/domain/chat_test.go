package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationID(t *testing.T) {
	assert.Equal(t, "chat-1", ConversationID("1"))

	matchID, ok := MatchIDFromConversation("chat-1")
	assert.True(t, ok)
	assert.Equal(t, "1", matchID)

	_, ok = MatchIDFromConversation("1")
	assert.False(t, ok)
}

func TestFromLocalUser(t *testing.T) {
	m := ChatMessage{SenderID: LocalUserSender}
	assert.True(t, m.FromLocalUser())

	m.SenderID = "1"
	assert.False(t, m.FromLocalUser())
}
