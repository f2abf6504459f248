package handler

import (
	"github.com/labstack/echo/v4"

	"bizmatch/internal/usecase"
	"bizmatch/pkg/response"
)

type MatchingHandler struct {
	matchingUseCase *usecase.MatchingUseCase
}

func NewMatchingHandler(matchingUseCase *usecase.MatchingUseCase) *MatchingHandler {
	return &MatchingHandler{matchingUseCase: matchingUseCase}
}

type matchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected completed"`
}

// requesterRef is the requester_id query parameter (profile or user id), or the caller.
func requesterRef(c echo.Context) string {
	if ref := c.QueryParam("requester_id"); ref != "" {
		return ref
	}
	return c.Get("uid").(string)
}

// FindMatches scores every provider against the requester and persists the match records.
func (h *MatchingHandler) FindMatches(c echo.Context) error {
	matches, err := h.matchingUseCase.FindMatches(c.Request().Context(), requesterRef(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, matches)
}

func (h *MatchingHandler) FindSmartMatches(c echo.Context) error {
	results, err := h.matchingUseCase.FindSmartMatches(c.Request().Context(), requesterRef(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, results)
}

func (h *MatchingHandler) UpdateMatchStatus(c echo.Context) error {
	var req matchStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	match, err := h.matchingUseCase.UpdateMatchStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, match)
}
