package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nearchat/nearchat-backend/internal/usecase/conversation"
	"github.com/nearchat/nearchat-backend/internal/usecase/profile"
)

type SessionHandler struct {
	conversations  *conversation.Manager
	profileUseCase *profile.UseCase
}

func NewSessionHandler(conversations *conversation.Manager, profileUseCase *profile.UseCase) *SessionHandler {
	return &SessionHandler{
		conversations:  conversations,
		profileUseCase: profileUseCase,
	}
}

// Reset handles POST /session/reset
// @Summary Exit/reset the session
// @Description Clears all local conversation state and the session profile. Idempotent.
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /session/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	h.conversations.Reset()
	h.profileUseCase.Reset()

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "session cleared",
	})
}
