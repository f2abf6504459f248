package router

import (
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profiles := e.Group("/v1/profiles")
	profiles.Use(authMiddleware.Authenticate)

	profiles.PUT("/requester", profileHandler.UpsertRequesterProfile)
	profiles.GET("/requester", profileHandler.GetRequesterProfile)
	profiles.GET("/requester/:userId", profileHandler.GetRequesterProfile)

	profiles.PUT("/provider", profileHandler.UpsertProviderProfile)
	profiles.GET("/provider", profileHandler.GetProviderProfile)
	profiles.GET("/provider/:userId", profileHandler.GetProviderProfile)
}
