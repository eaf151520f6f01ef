package domain

import (
	"strings"
	"time"
)

// LocalUserSender is the sender identifier used for messages written by the
// local user. Everything else is a match identifier.
const LocalUserSender = "user"

const conversationIDPrefix = "chat-"

// ConversationID derives the stable conversation identifier for a match.
func ConversationID(matchID string) string {
	return conversationIDPrefix + matchID
}

// MatchIDFromConversation is the inverse of ConversationID.
func MatchIDFromConversation(conversationID string) (string, bool) {
	if !strings.HasPrefix(conversationID, conversationIDPrefix) {
		return "", false
	}
	return strings.TrimPrefix(conversationID, conversationIDPrefix), true
}

// ChatMessage is a single immutable message. Ordering key is Timestamp
// ascending.
type ChatMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// FromLocalUser reports whether the message was written by the local user.
func (m *ChatMessage) FromLocalUser() bool {
	return m.SenderID == LocalUserSender
}

// ChatConversation is the ordered message history and metadata for one
// user-match pairing. LastMessage and LastTimestamp are a cache of the
// message list's tail, recomputed on every update.
type ChatConversation struct {
	ID            string        `json:"id"`
	Match         MatchProfile  `json:"match"`
	LastMessage   string        `json:"last_message"`
	LastTimestamp time.Time     `json:"last_timestamp"`
	Messages      []ChatMessage `json:"messages"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PlaceholderLastMessage is shown for conversations with no messages yet.
const PlaceholderLastMessage = "Say hi!"
