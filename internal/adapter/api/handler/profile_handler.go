package handler

import (
	"github.com/labstack/echo/v4"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/usecase"
	"bizmatch/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

type requesterProfileRequest struct {
	BusinessName string             `json:"business_name" validate:"required"`
	Industry     string             `json:"industry" validate:"required"`
	Size         string             `json:"size" validate:"required,oneof=micro small medium"`
	Location     string             `json:"location"`
	Needs        []string           `json:"needs"`
	ServiceTypes []string           `json:"service_types"`
	Budget       entity.BudgetRange `json:"budget"`
	Contact      entity.ContactInfo `json:"contact"`
}

type providerProfileRequest struct {
	BusinessName string              `json:"business_name" validate:"required"`
	Services     []string            `json:"services"`
	Capabilities []string            `json:"capabilities"`
	Pricing      []entity.PriceRange `json:"pricing"`
	Location     string              `json:"location"`
}

// UpsertRequesterProfile creates or replaces the caller's requester profile.
func (h *ProfileHandler) UpsertRequesterProfile(c echo.Context) error {
	var req requesterProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	profile, err := h.profileUseCase.UpsertRequesterProfile(c.Request().Context(), userID, usecase.RequesterProfileInput{
		BusinessName: req.BusinessName,
		Industry:     req.Industry,
		Size:         req.Size,
		Location:     req.Location,
		Needs:        req.Needs,
		ServiceTypes: req.ServiceTypes,
		Budget:       req.Budget,
		Contact:      req.Contact,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) GetRequesterProfile(c echo.Context) error {
	profile, err := h.profileUseCase.GetRequesterProfile(c.Request().Context(), targetUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

// UpsertProviderProfile creates or replaces the caller's provider profile. Rating and the
// published offering ids are kept.
func (h *ProfileHandler) UpsertProviderProfile(c echo.Context) error {
	var req providerProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	profile, err := h.profileUseCase.UpsertProviderProfile(c.Request().Context(), userID, usecase.ProviderProfileInput{
		BusinessName: req.BusinessName,
		Services:     req.Services,
		Capabilities: req.Capabilities,
		Pricing:      req.Pricing,
		Location:     req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) GetProviderProfile(c echo.Context) error {
	profile, err := h.profileUseCase.GetProviderProfile(c.Request().Context(), targetUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

// targetUser is the :userId path parameter, or the caller when the route has none.
func targetUser(c echo.Context) string {
	if userID := c.Param("userId"); userID != "" {
		return userID
	}
	return c.Get("uid").(string)
}
