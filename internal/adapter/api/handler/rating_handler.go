package handler

import (
	"github.com/labstack/echo/v4"

	"bizmatch/internal/usecase"
	"bizmatch/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{ratingUseCase: ratingUseCase}
}

type createRatingRequest struct {
	EngagementID string `json:"engagement_id" validate:"required"`
	ToUserID     string `json:"to_user_id"`
	Score        int    `json:"score" validate:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

func (h *RatingHandler) CreateRating(c echo.Context) error {
	var req createRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	rating, err := h.ratingUseCase.CreateRating(c.Request().Context(), usecase.CreateRatingInput{
		FromUserID:   userID,
		ToUserID:     req.ToUserID,
		EngagementID: req.EngagementID,
		Score:        req.Score,
		Comment:      req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, rating)
}

func (h *RatingHandler) ListEngagementRatings(c echo.Context) error {
	ratings, err := h.ratingUseCase.ListRatingsForEngagement(c.Request().Context(), c.Param("engagementId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ratings)
}

func (h *RatingHandler) ListUserRatings(c echo.Context) error {
	ratings, err := h.ratingUseCase.ListRatingsForUser(c.Request().Context(), targetUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ratings)
}

// CanRate reports whether the caller may still rate the engagement.
func (h *RatingHandler) CanRate(c echo.Context) error {
	userID := c.Get("uid").(string)

	allowed, err := h.ratingUseCase.CanRate(c.Request().Context(), userID, c.Param("engagementId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"can_rate": allowed})
}
