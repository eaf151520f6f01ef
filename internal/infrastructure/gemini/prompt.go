package gemini

import (
	"fmt"
	"strings"

	"github.com/nearchat/nearchat-backend/internal/domain"
)

// historyWindow is how many trailing messages are rendered into the prompt.
// Older context is silently dropped.
const historyWindow = 10

// Prompt is the persona instruction plus the transcript block sent as user
// content.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the conversation into a single completion request:
// a short persona instruction and the last messages as "<speaker>: <text>"
// lines in chronological order, followed by the cue marking where the reply
// should begin. Message text is interpolated verbatim.
func BuildPrompt(conv *domain.ChatConversation, language string) Prompt {
	system := fmt.Sprintf(
		"You are %s, a %s %s.\nCharacter: Heart-fluttering, flirty, charming. Brief responses in %s.",
		conv.Match.Nickname, conv.Match.Age, conv.Match.Gender, language,
	)

	messages := conv.Messages
	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}

	lines := make([]string, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		label := conv.Match.Nickname
		if m.FromLocalUser() {
			label = "User"
		}
		lines = append(lines, label+": "+m.Text)
	}

	var b strings.Builder
	b.WriteString("History:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nResponse:")

	return Prompt{System: system, User: b.String()}
}
