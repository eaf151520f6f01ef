package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nearchat/nearchat-backend/internal/delivery/http/handler"
)

type Router struct {
	profileHandler *handler.ProfileHandler
	feedHandler    *handler.FeedHandler
	chatHandler    *handler.ChatHandler
	sessionHandler *handler.SessionHandler
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	chatHandler *handler.ChatHandler,
	sessionHandler *handler.SessionHandler,
) *Router {
	return &Router{
		profileHandler: profileHandler,
		feedHandler:    feedHandler,
		chatHandler:    chatHandler,
		sessionHandler: sessionHandler,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Profile routes
		profile := v1.Group("/profile")
		{
			profile.POST("", r.profileHandler.CreateProfile)
			profile.GET("", r.profileHandler.GetProfile)
			profile.GET("/random", r.profileHandler.RandomProfile)
		}

		// Feed routes
		feed := v1.Group("/feed")
		{
			feed.GET("", r.feedHandler.GetFeed)
			feed.GET("/:match_id", r.feedHandler.GetMatch)
		}

		// Chat routes
		chats := v1.Group("/chats")
		{
			chats.GET("", r.chatHandler.ListConversations)
			chats.POST("", r.chatHandler.OpenConversation)
			chats.GET("/:chat_id", r.chatHandler.GetConversation)
			chats.POST("/:chat_id/messages", r.chatHandler.SendMessage)
			chats.GET("/:chat_id/typing", r.chatHandler.GetTyping)
			chats.GET("/:chat_id/ws", r.chatHandler.ServeConversation)
		}

		// Session routes
		session := v1.Group("/session")
		{
			session.POST("/reset", r.sessionHandler.Reset)
		}
	}

	return router
}
