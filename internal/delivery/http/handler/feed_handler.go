package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nearchat/nearchat-backend/internal/domain"
	"github.com/nearchat/nearchat-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// GetFeed handles GET /feed
// @Summary Discovery feed
// @Description List all catalog matches
// @Tags feed
// @Produce json
// @Success 200 {array} domain.MatchProfile
// @Failure 500 {object} ErrorResponse
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	matches, err := h.feedUseCase.GetFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load feed",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch handles GET /feed/:match_id
// @Summary Get one match profile
// @Tags feed
// @Produce json
// @Param match_id path string true "Match ID"
// @Success 200 {object} domain.MatchProfile
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/{match_id} [get]
func (h *FeedHandler) GetMatch(c *gin.Context) {
	match, err := h.feedUseCase.GetMatch(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "match not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load match",
		})
		return
	}

	c.JSON(http.StatusOK, match)
}
