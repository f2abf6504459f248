package router

import (
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"
	"bizmatch/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupMatchingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	matchingHandler := handler.GetMatchingHandler()

	matches := e.Group("/v1/matches")
	matches.Use(authMiddleware.Authenticate)

	matches.POST("", matchingHandler.FindMatches, rateLimitMiddleware.Limit(ratelimit.ActionSearch))
	matches.GET("/smart", matchingHandler.FindSmartMatches, rateLimitMiddleware.Limit(ratelimit.ActionSearch))
	matches.PATCH("/:id/status", matchingHandler.UpdateMatchStatus)
}
