package gemini

import (
	"context"
	"fmt"

	"github.com/nearchat/nearchat-backend/internal/domain"
)

// MockGenerator stands in for the completion service when no API key is
// configured. Replies are canned but stay in character.
type MockGenerator struct{}

func NewMockGenerator() MockGenerator {
	return MockGenerator{}
}

func (MockGenerator) GenerateReply(_ context.Context, conv *domain.ChatConversation, _ *domain.UserProfile) (string, error) {
	if len(conv.Messages) == 0 {
		return fmt.Sprintf("Hi, I'm %s! So glad we matched 💕", conv.Match.Nickname), nil
	}
	last := conv.Messages[len(conv.Messages)-1]
	return fmt.Sprintf("Aww, %q? Tell me more 😊", last.Text), nil
}
