package router

import (
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware, wsHandler *handler.WebSocketHandler) {
	SetupProfileRouter(e, authMiddleware)
	SetupOfferingRouter(e, authMiddleware, rateLimitMiddleware)
	SetupMatchingRouter(e, authMiddleware, rateLimitMiddleware)
	SetupChatRouter(e, handler.GetChatHandler(), authMiddleware, rateLimitMiddleware)
	SetupEngagementRouter(e, authMiddleware)
	SetupRatingRouter(e, authMiddleware)
	SetupWebSocketRouter(e, wsHandler, authMiddleware)
	SetupHealthRouter(e)
}
