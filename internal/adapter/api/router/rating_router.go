package router

import (
	"bizmatch/internal/adapter/api/handler"
	"bizmatch/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRatingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	ratingHandler := handler.GetRatingHandler()

	ratings := e.Group("/v1/ratings")
	ratings.GET("/engagement/:engagementId", ratingHandler.ListEngagementRatings)
	ratings.GET("/user/:userId", ratingHandler.ListUserRatings)

	authed := e.Group("/v1/ratings")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("", ratingHandler.CreateRating)
	authed.GET("/engagement/:engagementId/eligibility", ratingHandler.CanRate)
}
