package handler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single trusted client; allow any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RoomUpdate is pushed to the chat-room socket: the full ordered message
// list plus refreshed summary fields, and the current typing flag.
type RoomUpdate struct {
	ConversationID string               `json:"conversation_id"`
	Messages       []domain.ChatMessage `json:"messages"`
	LastMessage    string               `json:"last_message"`
	LastTimestamp  time.Time            `json:"last_timestamp"`
	Typing         bool                 `json:"typing"`
}

// ServeConversation handles GET /chats/:chat_id/ws. The live store
// subscription is acquired when the socket opens and released when it
// closes, on every exit path.
func (h *ChatHandler) ServeConversation(c *gin.Context) {
	conversationID := c.Param("chat_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to upgrade connection",
		})
		return
	}

	log := observability.WithFields("conversation_id", conversationID)

	// gorilla connections allow a single concurrent writer.
	var writeMu sync.Mutex
	push := func(update RoomUpdate) bool {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(update); err != nil {
			return false
		}
		return true
	}

	release, err := h.conversations.OpenRoom(conversationID, func(conv *domain.ChatConversation) {
		typing, typingErr := h.pipeline.Typing(c.Request.Context(), conversationID)
		if typingErr != nil {
			typing = false
		}
		push(RoomUpdate{
			ConversationID: conv.ID,
			Messages:       conv.Messages,
			LastMessage:    conv.LastMessage,
			LastTimestamp:  conv.LastTimestamp,
			Typing:         typing,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			writeMu.Lock()
			_ = conn.WriteJSON(ErrorResponse{Error: "conversation not found"})
			writeMu.Unlock()
		}
		_ = conn.Close()
		return
	}

	done := make(chan struct{})

	// Typing changes do not touch the message collection, so poll them and
	// push a transition as its own update.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		lastTyping := false
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				typing, typingErr := h.pipeline.Typing(c.Request.Context(), conversationID)
				if typingErr != nil || typing == lastTyping {
					continue
				}
				lastTyping = typing

				conv, convErr := h.conversations.Get(conversationID)
				if convErr != nil {
					continue
				}
				push(RoomUpdate{
					ConversationID: conv.ID,
					Messages:       conv.Messages,
					LastMessage:    conv.LastMessage,
					LastTimestamp:  conv.LastTimestamp,
					Typing:         typing,
				})
			}
		}
	}()

	// Read loop: the client sends nothing meaningful; this just detects the
	// socket closing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	release()
	if err := conn.Close(); err != nil {
		log.Debug("closing chat socket", "error", err)
	}
}
