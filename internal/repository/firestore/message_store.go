package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/observability"
	"github.com/nearchat/nearchat-backend/internal/repository"
)

// MessageStore is the Connected store handle: messages live under
// chats/{conversationID}/messages ordered by the timestamp field, profiles
// under a parallel users collection.
type MessageStore struct {
	client *firestore.Client
}

func NewMessageStore(client *firestore.Client) repository.MessageStore {
	return &MessageStore{client: client}
}

func (s *MessageStore) messagesCol(conversationID string) *firestore.CollectionRef {
	return s.client.Collection("chats").Doc(conversationID).Collection("messages")
}

func (s *MessageStore) usersCol() *firestore.CollectionRef {
	return s.client.Collection("users")
}

type messageDoc struct {
	SenderID  string    `firestore:"sender_id"`
	Text      string    `firestore:"text"`
	Timestamp time.Time `firestore:"timestamp,serverTimestamp"`
}

type userDoc struct {
	Nickname  string    `firestore:"nickname"`
	PhotoURL  string    `firestore:"photo_url"`
	Gender    string    `firestore:"gender"`
	Age       string    `firestore:"age"`
	Language  string    `firestore:"language"`
	Interests []string  `firestore:"interests"`
	CreatedAt time.Time `firestore:"created_at,serverTimestamp"`
}

// AppendMessage writes the message with a server-assigned document id and
// creation timestamp. The caller's id and timestamp are superseded on read.
func (s *MessageStore) AppendMessage(ctx context.Context, conversationID string, msg *domain.ChatMessage) error {
	doc := messageDoc{
		SenderID: msg.SenderID,
		Text:     msg.Text,
	}

	_, _, err := s.messagesCol(conversationID).Add(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

// Subscribe streams query snapshots for the conversation's message
// collection. Each snapshot is delivered as the full ordered list. The
// returned func cancels the stream; no callbacks fire after it returns.
func (s *MessageStore) Subscribe(conversationID string, onUpdate func(messages []domain.ChatMessage)) repository.UnsubscribeFunc {
	ctx, cancel := context.WithCancel(context.Background())

	q := s.messagesCol(conversationID).OrderBy("timestamp", firestore.Asc)
	snaps := q.Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		log := observability.WithFields("conversation_id", conversationID)

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Error("message snapshot stream closed", "error", err)
				}
				return
			}

			messages, err := decodeSnapshot(snap)
			if err != nil {
				log.Error("decoding message snapshot", "error", err)
				continue
			}
			onUpdate(messages)
		}
	}()

	return repository.UnsubscribeFunc(cancel)
}

func decodeSnapshot(snap *firestore.QuerySnapshot) ([]domain.ChatMessage, error) {
	messages := make([]domain.ChatMessage, 0, snap.Size)
	iter := snap.Documents
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating message docs: %w", err)
		}

		var doc messageDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		messages = append(messages, domain.ChatMessage{
			ID:        docSnap.Ref.ID,
			SenderID:  doc.SenderID,
			Text:      doc.Text,
			Timestamp: doc.Timestamp,
		})
	}
	return messages, nil
}

func (s *MessageStore) SaveUserProfile(ctx context.Context, profile *domain.UserProfile) (string, error) {
	doc := userDoc{
		Nickname:  profile.Nickname,
		PhotoURL:  profile.PhotoURL,
		Gender:    string(profile.Gender),
		Age:       profile.Age,
		Language:  profile.Language,
		Interests: profile.Interests,
	}

	ref := s.usersCol().NewDoc()
	if _, err := ref.Set(ctx, doc); err != nil {
		return "", fmt.Errorf("firestore SaveUserProfile: %w", err)
	}
	return ref.ID, nil
}
