package router

import (
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"
	"bizmatch/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupOfferingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	offeringHandler := handler.GetOfferingHandler()

	offerings := e.Group("/v1/offerings")
	offerings.GET("", offeringHandler.SearchOfferings, rateLimitMiddleware.Limit(ratelimit.ActionSearch))
	offerings.GET("/provider/:providerId", offeringHandler.ListProviderOfferings)

	myOfferings := e.Group("/v1/my-offerings")
	myOfferings.Use(authMiddleware.Authenticate)
	myOfferings.POST("", offeringHandler.PublishOffering)
	myOfferings.PATCH("/:id/status", offeringHandler.UpdateOfferingStatus)
}
