package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"bizmatch/internal/usecase"
	"bizmatch/pkg/response"
)

type EngagementHandler struct {
	engagementUseCase *usecase.EngagementUseCase
}

func NewEngagementHandler(engagementUseCase *usecase.EngagementUseCase) *EngagementHandler {
	return &EngagementHandler{engagementUseCase: engagementUseCase}
}

type createEngagementRequest struct {
	ConversationID string     `json:"conversation_id" validate:"required"`
	ProviderID     string     `json:"provider_id" validate:"required"`
	QuoteID        string     `json:"quote_id"`
	Amount         float64    `json:"amount" validate:"gte=0"`
	Currency       string     `json:"currency"`
	StartDate      *time.Time `json:"start_date"`
}

type engagementStatusRequest struct {
	Status  string     `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	EndDate *time.Time `json:"end_date"`
}

// CreateEngagement records an engagement with the caller as requester.
func (h *EngagementHandler) CreateEngagement(c echo.Context) error {
	var req createEngagementRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	engagement, err := h.engagementUseCase.CreateEngagement(c.Request().Context(), usecase.CreateEngagementInput{
		ConversationID: req.ConversationID,
		RequesterID:    userID,
		ProviderID:     req.ProviderID,
		QuoteID:        req.QuoteID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		StartDate:      startDate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, engagement)
}

func (h *EngagementHandler) GetEngagement(c echo.Context) error {
	engagement, err := h.engagementUseCase.GetEngagement(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, engagement)
}

func (h *EngagementHandler) GetByConversation(c echo.Context) error {
	engagement, err := h.engagementUseCase.GetByConversation(c.Request().Context(), c.Param("conversationId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, engagement)
}

func (h *EngagementHandler) ListEngagements(c echo.Context) error {
	userID := c.Get("uid").(string)

	engagements, err := h.engagementUseCase.ListEngagements(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, engagements)
}

func (h *EngagementHandler) UpdateEngagementStatus(c echo.Context) error {
	var req engagementStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	engagement, err := h.engagementUseCase.UpdateEngagementStatusAs(c.Request().Context(), userID, c.Param("id"), req.Status, req.EndDate)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, engagement)
}
