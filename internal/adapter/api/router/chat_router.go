package router

import (
	"github.com/labstack/echo/v4"

	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"
	"bizmatch/internal/infrastructure/ratelimit"
)

// SetupChatRouter sets up conversation, message and quote routes
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.POST("", chatHandler.CreateConversation, rateLimitMiddleware.Limit(ratelimit.ActionCreateConversation))
	conversations.GET("", chatHandler.ListConversations)
	conversations.GET("/:id", chatHandler.GetConversation)
	conversations.POST("/:id/close", chatHandler.CloseConversation)

	conversations.POST("/:id/messages", chatHandler.SendMessage, rateLimitMiddleware.Limit(ratelimit.ActionSendMessage))
	conversations.GET("/:id/messages", chatHandler.GetMessages)

	conversations.POST("/:id/quotes/:quoteId/respond", chatHandler.RespondToQuote)

	quotes := e.Group("/v1/quotes")
	quotes.Use(authMiddleware.Authenticate)
	quotes.POST("/:quoteId/respond", chatHandler.RespondToQuote)
}
