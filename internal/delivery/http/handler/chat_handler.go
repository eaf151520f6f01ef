package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/usecase/conversation"
	"github.com/nearchat/nearchat-backend/internal/usecase/profile"
	"github.com/nearchat/nearchat-backend/internal/usecase/reply"
)

type ChatHandler struct {
	conversations  *conversation.Manager
	pipeline       *reply.Pipeline
	profileUseCase *profile.UseCase
}

func NewChatHandler(
	conversations *conversation.Manager,
	pipeline *reply.Pipeline,
	profileUseCase *profile.UseCase,
) *ChatHandler {
	return &ChatHandler{
		conversations:  conversations,
		pipeline:       pipeline,
		profileUseCase: profileUseCase,
	}
}

// ConversationSummary is the chat-list projection of a conversation.
type ConversationSummary struct {
	ID            string              `json:"id"`
	Match         domain.MatchProfile `json:"match"`
	LastMessage   string              `json:"last_message"`
	LastTimestamp time.Time           `json:"last_timestamp"`
	CreatedAt     time.Time           `json:"created_at"`
}

func summarize(conv *domain.ChatConversation) ConversationSummary {
	return ConversationSummary{
		ID:            conv.ID,
		Match:         conv.Match,
		LastMessage:   conv.LastMessage,
		LastTimestamp: conv.LastTimestamp,
		CreatedAt:     conv.CreatedAt,
	}
}

// OpenConversationRequest names the match to chat with.
type OpenConversationRequest struct {
	MatchID string `json:"match_id" binding:"required"`
}

// OpenConversation handles POST /chats
// @Summary Open (or create) the conversation for a match
// @Description Lookup-or-create: at most one conversation exists per match
// @Tags chats
// @Accept json
// @Produce json
// @Param request body OpenConversationRequest true "Match to open"
// @Success 200 {object} domain.ChatConversation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	conv, err := h.conversations.LookupOrCreate(c.Request.Context(), req.MatchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "match not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to open conversation",
		})
		return
	}

	c.JSON(http.StatusOK, conv)
}

// ListConversations handles GET /chats
// @Summary List conversation summaries, most recent activity first
// @Tags chats
// @Produce json
// @Success 200 {array} ConversationSummary
// @Router /chats [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	convs := h.conversations.List()
	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summaries = append(summaries, summarize(conv))
	}

	c.JSON(http.StatusOK, summaries)
}

// GetConversation handles GET /chats/:chat_id
// @Summary Get full conversation detail
// @Tags chats
// @Produce json
// @Param chat_id path string true "Conversation ID"
// @Success 200 {object} domain.ChatConversation
// @Failure 404 {object} ErrorResponse
// @Router /chats/{chat_id} [get]
func (h *ChatHandler) GetConversation(c *gin.Context) {
	conv, err := h.conversations.Get(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "conversation not found",
		})
		return
	}

	c.JSON(http.StatusOK, conv)
}

// SendMessageRequest carries the chat input box contents.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage handles POST /chats/:chat_id/messages
// @Summary Send a message
// @Description Persists the user message immediately; the persona reply is generated in the background
// @Tags chats
// @Accept json
// @Produce json
// @Param chat_id path string true "Conversation ID"
// @Param request body SendMessageRequest true "Message text"
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{chat_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userProfile, err := h.profileUseCase.Current()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "profile not set up",
		})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	err = h.pipeline.Send(c.Request.Context(), c.Param("chat_id"), userProfile, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "message text is empty",
			})
			return
		}
		if errors.Is(err, domain.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "conversation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to send message",
		})
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Message: "message sent",
	})
}

// GetTyping handles GET /chats/:chat_id/typing
// @Summary Typing indicator
// @Tags chats
// @Produce json
// @Param chat_id path string true "Conversation ID"
// @Success 200 {object} map[string]bool
// @Router /chats/{chat_id}/typing [get]
func (h *ChatHandler) GetTyping(c *gin.Context) {
	typing, err := h.pipeline.Typing(c.Request.Context(), c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to read typing state",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"typing": typing,
	})
}
