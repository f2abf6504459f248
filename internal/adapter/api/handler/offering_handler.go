package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"bizmatch/internal/domain/service"
	"bizmatch/internal/usecase"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/response"
	"bizmatch/pkg/utils"
)

type OfferingHandler struct {
	profileUseCase *usecase.ProfileUseCase
	searchUseCase  *usecase.SearchUseCase
}

func NewOfferingHandler(profileUseCase *usecase.ProfileUseCase, searchUseCase *usecase.SearchUseCase) *OfferingHandler {
	return &OfferingHandler{
		profileUseCase: profileUseCase,
		searchUseCase:  searchUseCase,
	}
}

type publishOfferingRequest struct {
	Type           string   `json:"type" validate:"required,oneof=service product"`
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	MinPrice       float64  `json:"min_price" validate:"gte=0"`
	MaxPrice       float64  `json:"max_price" validate:"gte=0"`
	Currency       string   `json:"currency"`
	DeliveryTime   string   `json:"delivery_time"`
	Features       []string `json:"features"`
	Requirements   []string `json:"requirements"`
	Specifications []string `json:"specifications"`
	Tags           []string `json:"tags"`
	Location       string   `json:"location"`
}

type offeringStatusRequest struct {
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
	IsAvailable *bool  `json:"is_available"`
}

// PublishOffering publishes a service or product for the caller's provider profile.
func (h *OfferingHandler) PublishOffering(c echo.Context) error {
	var req publishOfferingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	offering, err := h.profileUseCase.PublishOffering(c.Request().Context(), userID, usecase.OfferingInput{
		Type:           req.Type,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		MinPrice:       req.MinPrice,
		MaxPrice:       req.MaxPrice,
		Currency:       req.Currency,
		DeliveryTime:   req.DeliveryTime,
		Features:       req.Features,
		Requirements:   req.Requirements,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		Location:       req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offering)
}

func (h *OfferingHandler) UpdateOfferingStatus(c echo.Context) error {
	var req offeringStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	offering, err := h.profileUseCase.SetOfferingStatus(c.Request().Context(), userID, c.Param("id"), req.Status, req.IsAvailable)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offering)
}

func (h *OfferingHandler) ListProviderOfferings(c echo.Context) error {
	offerings, err := h.profileUseCase.ListOfferings(c.Request().Context(), c.Param("providerId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offerings)
}

// SearchOfferings runs the catalog search. List filters (features, tags) are comma separated.
func (h *OfferingHandler) SearchOfferings(c echo.Context) error {
	filter := service.SearchFilter{
		Term:         c.QueryParam("term"),
		Category:     c.QueryParam("category"),
		Type:         c.QueryParam("type"),
		DeliveryTime: c.QueryParam("delivery_time"),
		Features:     splitList(c.QueryParam("features")),
		Tags:         splitList(c.QueryParam("tags")),
		Location:     c.QueryParam("location"),
	}

	if raw := c.QueryParam("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			return response.Error(c, errors.BadRequest("max_price must be a non-negative number", err))
		}
		filter.MaxPrice = maxPrice
	}

	if raw := c.QueryParam("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return response.Error(c, errors.BadRequest("available must be true or false", err))
		}
		filter.IsAvailable = &available
	}

	results, err := h.searchUseCase.SearchOfferings(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	start, end := pagination.Window(len(results))

	return response.Paginated(c, results[start:end], int64(len(results)), pagination.Page, pagination.PageSize)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
