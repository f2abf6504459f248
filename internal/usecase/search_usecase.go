package usecase

import (
	"context"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/internal/domain/service"
)

type SearchUseCase struct {
	offeringRepo repository.OfferingRepository
	providerRepo repository.ProviderProfileRepository
}

func NewSearchUseCase(
	offeringRepo repository.OfferingRepository,
	providerRepo repository.ProviderProfileRepository,
) *SearchUseCase {
	return &SearchUseCase{
		offeringRepo: offeringRepo,
		providerRepo: providerRepo,
	}
}

// SearchOfferings loads the catalog and applies filter. Only active, available offerings are returned.
func (uc *SearchUseCase) SearchOfferings(ctx context.Context, filter service.SearchFilter) ([]service.OfferingResult, error) {
	offerings, err := uc.offeringRepo.List(ctx, filter.Type)
	if err != nil {
		return nil, err
	}

	providers, err := uc.providerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.ProviderProfile, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	return service.SearchOfferings(offerings, byID, filter), nil
}
