package router

import (
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupEngagementRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	engagementHandler := handler.GetEngagementHandler()

	engagements := e.Group("/v1/engagements")
	engagements.Use(authMiddleware.Authenticate)

	engagements.POST("", engagementHandler.CreateEngagement)
	engagements.GET("", engagementHandler.ListEngagements)
	engagements.GET("/:id", engagementHandler.GetEngagement)
	engagements.GET("/conversation/:conversationId", engagementHandler.GetByConversation)
	engagements.PATCH("/:id/status", engagementHandler.UpdateEngagementStatus)
}
