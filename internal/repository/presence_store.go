package repository

import "context"

// PresenceStore tracks transient per-conversation state: the typing
// indicator shown while a reply is pending, and the in-flight reply lock
// that keeps a rapid double-submit from launching two completion calls.
type PresenceStore interface {
	SetTyping(ctx context.Context, conversationID string) error
	ClearTyping(ctx context.Context, conversationID string) error
	IsTyping(ctx context.Context, conversationID string) (bool, error)

	// AcquireReplyLock returns true when the caller now holds the lock for
	// the conversation, false when a reply is already in flight.
	AcquireReplyLock(ctx context.Context, conversationID string) (bool, error)
	ReleaseReplyLock(ctx context.Context, conversationID string) error
}
