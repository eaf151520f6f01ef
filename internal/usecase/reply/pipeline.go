package reply

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/observability"
	"github.com/nearchat/nearchat-backend/internal/repository"
	"github.com/nearchat/nearchat-backend/internal/usecase/conversation"
)

// Generator is the external text-completion collaborator.
type Generator interface {
	GenerateReply(ctx context.Context, conv *domain.ChatConversation, user *domain.UserProfile) (string, error)
}

// FallbackReply is persisted when the completion service returns empty text.
const FallbackReply = "😊"

const completionTimeout = 30 * time.Second

// Pipeline orchestrates send -> persist -> prompt -> complete -> persist.
// Per conversation it moves Idle -> AwaitingReply -> Idle; the typing
// indicator is set exactly while a reply is awaited. At most one completion
// call per conversation is in flight: a second send while one is pending
// still persists the user message but does not start another call.
type Pipeline struct {
	store         repository.MessageStore
	presence      repository.PresenceStore
	conversations *conversation.Manager
	generator     Generator

	now func() time.Time
	wg  sync.WaitGroup
}

func NewPipeline(
	store repository.MessageStore,
	presence repository.PresenceStore,
	conversations *conversation.Manager,
	generator Generator,
) *Pipeline {
	return &Pipeline{
		store:         store,
		presence:      presence,
		conversations: conversations,
		generator:     generator,
		now:           time.Now,
	}
}

// Send persists the user's message and launches the reply leg in the
// background. The user message is always persisted (and thus visible via the
// live subscription) before the completion call begins, so conversation
// order is never inverted. Empty or whitespace-only text is rejected with no
// state change.
func (p *Pipeline) Send(ctx context.Context, conversationID string, user *domain.UserProfile, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyMessage
	}

	conv, err := p.conversations.Get(conversationID)
	if err != nil {
		return err
	}

	userMsg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  domain.LocalUserSender,
		Text:      text,
		Timestamp: p.now(),
	}
	if err := p.store.AppendMessage(ctx, conversationID, &userMsg); err != nil {
		return fmt.Errorf("failed to persist user message: %w", err)
	}

	log := observability.WithFields("conversation_id", conversationID)

	acquired, err := p.presence.AcquireReplyLock(ctx, conversationID)
	if err != nil {
		log.Error("acquiring reply lock", "error", err)
		return nil
	}
	if !acquired {
		// A reply is already in flight for this conversation.
		return nil
	}

	if err := p.presence.SetTyping(ctx, conversationID); err != nil {
		log.Warn("setting typing indicator", "error", err)
	}

	// Prompt context: the history at send time plus the message just sent.
	conv.Messages = append(conv.Messages, userMsg)

	p.wg.Add(1)
	go p.completeReply(conv, user)
	return nil
}

func (p *Pipeline) completeReply(conv *domain.ChatConversation, user *domain.UserProfile) {
	defer p.wg.Done()

	log := observability.WithFields("conversation_id", conv.ID, "match_id", conv.Match.ID)

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	defer func() {
		cleanupCtx, cancelCleanup := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelCleanup()
		if err := p.presence.ClearTyping(cleanupCtx, conv.ID); err != nil {
			log.Warn("clearing typing indicator", "error", err)
		}
		if err := p.presence.ReleaseReplyLock(cleanupCtx, conv.ID); err != nil {
			log.Warn("releasing reply lock", "error", err)
		}
	}()

	text, err := p.generator.GenerateReply(ctx, conv, user)
	if err != nil {
		// Silent failure: nothing is persisted and no error reaches the
		// user; the pipeline just returns to idle.
		log.Error("completion call failed", "error", err)
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = FallbackReply
	}

	replyMsg := domain.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  conv.Match.ID,
		Text:      text,
		Timestamp: p.now(),
	}
	if err := p.store.AppendMessage(ctx, conv.ID, &replyMsg); err != nil {
		log.Error("persisting reply message", "error", err)
	}
}

// Typing reports whether a reply is pending for the conversation.
func (p *Pipeline) Typing(ctx context.Context, conversationID string) (bool, error) {
	return p.presence.IsTyping(ctx, conversationID)
}

// Wait blocks until all in-flight reply legs finish. Used on shutdown and in
// tests.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}
