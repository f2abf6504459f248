package usecase

import (
	"context"
	"strings"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
)

type ProfileUseCase struct {
	requesterRepo repository.RequesterProfileRepository
	providerRepo  repository.ProviderProfileRepository
	offeringRepo  repository.OfferingRepository
	settings      Settings
}

func NewProfileUseCase(
	requesterRepo repository.RequesterProfileRepository,
	providerRepo repository.ProviderProfileRepository,
	offeringRepo repository.OfferingRepository,
	settings Settings,
) *ProfileUseCase {
	return &ProfileUseCase{
		requesterRepo: requesterRepo,
		providerRepo:  providerRepo,
		offeringRepo:  offeringRepo,
		settings:      settings.withDefaults(),
	}
}

type RequesterProfileInput struct {
	BusinessName string
	Industry     string
	Size         string
	Location     string
	Needs        []string
	ServiceTypes []string
	Budget       entity.BudgetRange
	Contact      entity.ContactInfo
}

type ProviderProfileInput struct {
	BusinessName string
	Services     []string
	Capabilities []string
	Pricing      []entity.PriceRange
	Location     string
}

type OfferingInput struct {
	Type           string
	Name           string
	Description    string
	Category       string
	MinPrice       float64
	MaxPrice       float64 // ignored for products
	Currency       string
	DeliveryTime   string
	Features       []string
	Requirements   []string
	Specifications []string
	Tags           []string
	Location       string
}

// UpsertRequesterProfile creates or replaces the requester profile owned by userID.
func (uc *ProfileUseCase) UpsertRequesterProfile(ctx context.Context, userID string, input RequesterProfileInput) (*entity.RequesterProfile, error) {
	if userID == "" {
		return nil, errors.BadRequest("User is required", nil)
	}
	switch input.Size {
	case "", entity.SizeMicro, entity.SizeSmall, entity.SizeMedium:
	default:
		return nil, errors.BadRequest("Invalid business size: "+input.Size, nil)
	}
	if input.Budget.Min < 0 || input.Budget.Max < 0 || input.Budget.Min > input.Budget.Max {
		return nil, errors.BadRequest("Budget must satisfy 0 <= min <= max", nil)
	}

	profile, err := uc.requesterRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	exists := err == nil
	if !exists {
		profile = &entity.RequesterProfile{UserID: userID}
	}

	profile.BusinessName = input.BusinessName
	profile.Industry = input.Industry
	profile.Size = input.Size
	profile.Location = input.Location
	profile.Needs = nonEmpty(input.Needs)
	profile.ServiceTypes = nonEmpty(input.ServiceTypes)
	profile.Budget = input.Budget
	profile.Contact = input.Contact

	if exists {
		err = uc.requesterRepo.Update(ctx, profile)
	} else {
		err = uc.requesterRepo.Create(ctx, profile)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProfileUseCase) GetRequesterProfile(ctx context.Context, userID string) (*entity.RequesterProfile, error) {
	return uc.requesterRepo.GetByUserID(ctx, userID)
}

// UpsertProviderProfile creates or updates the provider profile owned by userID. The rating
// aggregate and owned offering ids are preserved.
func (uc *ProfileUseCase) UpsertProviderProfile(ctx context.Context, userID string, input ProviderProfileInput) (*entity.ProviderProfile, error) {
	if userID == "" {
		return nil, errors.BadRequest("User is required", nil)
	}
	for _, p := range input.Pricing {
		if p.Min < 0 || p.Min > p.Max {
			return nil, errors.BadRequest("Price ranges must satisfy 0 <= min <= max", nil)
		}
	}

	profile, err := uc.providerRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	exists := err == nil
	if !exists {
		profile = &entity.ProviderProfile{UserID: userID}
	}

	profile.BusinessName = input.BusinessName
	profile.Services = nonEmpty(input.Services)
	profile.Capabilities = nonEmpty(input.Capabilities)
	profile.Pricing = input.Pricing
	profile.Location = input.Location

	if exists {
		err = uc.providerRepo.Update(ctx, profile)
	} else {
		err = uc.providerRepo.Create(ctx, profile)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *ProfileUseCase) GetProviderProfile(ctx context.Context, userID string) (*entity.ProviderProfile, error) {
	return uc.providerRepo.GetByUserID(ctx, userID)
}

// PublishOffering stores a new active offering for the provider owned by userID and merges
// its name, tags and price into the provider profile. The merge only ever appends.
func (uc *ProfileUseCase) PublishOffering(ctx context.Context, userID string, input OfferingInput) (*entity.Offering, error) {
	if input.Type != entity.OfferingTypeService && input.Type != entity.OfferingTypeProduct {
		return nil, errors.BadRequest("Offering type must be service or product", nil)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Offering name is required", nil)
	}
	if input.Type == entity.OfferingTypeProduct {
		input.MaxPrice = input.MinPrice
	}
	if input.MinPrice < 0 || input.MinPrice > input.MaxPrice {
		return nil, errors.BadRequest("Price must satisfy 0 <= min <= max", nil)
	}

	provider, err := uc.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.settings.DefaultCurrency
	}
	location := input.Location
	if location == "" {
		location = provider.Location
	}

	offering := &entity.Offering{
		ProviderID:   provider.ID,
		Type:         input.Type,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		MinPrice:     input.MinPrice,
		MaxPrice:     input.MaxPrice,
		Currency:     currency,
		DeliveryTime: input.DeliveryTime,
		Features:     nonEmpty(input.Features),
		Tags:         nonEmpty(input.Tags),
		Location:     location,
		IsAvailable:  true,
		Status:       entity.OfferingStatusActive,
	}
	if input.Type == entity.OfferingTypeService {
		offering.Requirements = nonEmpty(input.Requirements)
	} else {
		offering.Specifications = nonEmpty(input.Specifications)
	}

	if err := uc.offeringRepo.Create(ctx, offering); err != nil {
		return nil, err
	}
	logger.Info("Provider %s published %s %s", provider.ID, offering.Type, offering.ID)

	mergeOffering(provider, offering)
	if err := uc.providerRepo.Update(ctx, provider); err != nil {
		logger.LogSideEffectError("merge offering into provider profile", provider.ID, err)
	}

	return offering, nil
}

// SetOfferingStatus changes status and, when available is non-nil, availability.
func (uc *ProfileUseCase) SetOfferingStatus(ctx context.Context, userID, offeringID, status string, available *bool) (*entity.Offering, error) {
	if status != "" && status != entity.OfferingStatusActive && status != entity.OfferingStatusInactive {
		return nil, errors.BadRequest("Offering status must be active or inactive", nil)
	}

	offering, err := uc.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	provider, err := uc.providerRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}
	if provider == nil || provider.ID != offering.ProviderID {
		return nil, errors.Forbidden("You do not own this offering", nil)
	}

	if status != "" {
		offering.Status = status
	}
	if available != nil {
		offering.IsAvailable = *available
	}

	if err := uc.offeringRepo.Update(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}

func (uc *ProfileUseCase) ListOfferings(ctx context.Context, providerID string) ([]*entity.Offering, error) {
	return uc.offeringRepo.ListByProviderID(ctx, providerID)
}

func mergeOffering(provider *entity.ProviderProfile, offering *entity.Offering) {
	if offering.Type == entity.OfferingTypeService {
		provider.ServiceIDs = append(provider.ServiceIDs, offering.ID)
	} else {
		provider.ProductIDs = append(provider.ProductIDs, offering.ID)
	}
	provider.Services = appendUnique(provider.Services, offering.Name)
	provider.Capabilities = appendUnique(provider.Capabilities, offering.Tags...)
	provider.Pricing = append(provider.Pricing, entity.PriceRange{
		Service: offering.Name,
		Min:     offering.MinPrice,
		Max:     offering.MaxPrice,
	})
}

// appendUnique appends values not already present, compared case-insensitively.
func appendUnique(list []string, values ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		seen[strings.ToLower(v)] = true
	}
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		list = append(list, strings.TrimSpace(v))
	}
	return list
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
