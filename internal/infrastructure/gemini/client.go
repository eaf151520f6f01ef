package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nearchat/nearchat-backend/internal/domain"
)

// Client calls the Gemini text-completion service to generate persona
// replies. Treated as stateless request/response; no streaming.
type Client struct {
	client    *genai.Client
	modelName string
}

func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: modelName,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateReply produces the match persona's next line. An empty string with
// a nil error means the model returned no text; the caller substitutes the
// fallback reply.
func (c *Client) GenerateReply(ctx context.Context, conv *domain.ChatConversation, user *domain.UserProfile) (string, error) {
	prompt := BuildPrompt(conv, user.Language)

	// A fresh model handle per call: SystemInstruction is per-conversation
	// and the handle is not safe for concurrent mutation.
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.7)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt.System)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
