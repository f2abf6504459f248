package router

import (
	"github.com/labstack/echo/v4"

	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"
)

// SetupWebSocketRouter exposes the live notification stream.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/ws", wsHandler.HandleWebSocket, authMiddleware.Authenticate)
}
