package repository

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type memoryRequesterProfileRepository struct {
	table *memoryTable[entity.RequesterProfile]
}

func NewMemoryRequesterProfileRepository() repository.RequesterProfileRepository {
	return &memoryRequesterProfileRepository{
		table: newMemoryTable(func(p *entity.RequesterProfile) *entity.RequesterProfile {
			c := *p
			c.Needs = copyStrings(p.Needs)
			c.ServiceTypes = copyStrings(p.ServiceTypes)
			return &c
		}),
	}
}

func (r *memoryRequesterProfileRepository) Create(ctx context.Context, profile *entity.RequesterProfile) error {
	if profile.ID == "" {
		profile.ID = utils.NewID("requester")
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return r.table.insert(profile.ID, profile)
}

func (r *memoryRequesterProfileRepository) GetByID(ctx context.Context, id string) (*entity.RequesterProfile, error) {
	profile, ok := r.table.get(id)
	if !ok {
		return nil, errors.NotFound("Requester profile", nil)
	}
	return profile, nil
}

func (r *memoryRequesterProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.RequesterProfile, error) {
	profile, ok := r.table.first(func(p *entity.RequesterProfile) bool { return p.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Requester profile", nil)
	}
	return profile, nil
}

func (r *memoryRequesterProfileRepository) Update(ctx context.Context, profile *entity.RequesterProfile) error {
	profile.UpdatedAt = time.Now()
	if !r.table.replace(profile.ID, profile) {
		return errors.NotFound("Requester profile", nil)
	}
	return nil
}

type memoryProviderProfileRepository struct {
	table *memoryTable[entity.ProviderProfile]
}

func NewMemoryProviderProfileRepository() repository.ProviderProfileRepository {
	return &memoryProviderProfileRepository{
		table: newMemoryTable(func(p *entity.ProviderProfile) *entity.ProviderProfile {
			c := *p
			c.Services = copyStrings(p.Services)
			c.Capabilities = copyStrings(p.Capabilities)
			c.ServiceIDs = copyStrings(p.ServiceIDs)
			c.ProductIDs = copyStrings(p.ProductIDs)
			if p.Pricing != nil {
				c.Pricing = append([]entity.PriceRange(nil), p.Pricing...)
			}
			return &c
		}),
	}
}

func (r *memoryProviderProfileRepository) Create(ctx context.Context, profile *entity.ProviderProfile) error {
	if profile.ID == "" {
		profile.ID = utils.NewID("provider")
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	return r.table.insert(profile.ID, profile)
}

func (r *memoryProviderProfileRepository) GetByID(ctx context.Context, id string) (*entity.ProviderProfile, error) {
	profile, ok := r.table.get(id)
	if !ok {
		return nil, errors.NotFound("Provider profile", nil)
	}
	return profile, nil
}

func (r *memoryProviderProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.ProviderProfile, error) {
	profile, ok := r.table.first(func(p *entity.ProviderProfile) bool { return p.UserID == userID })
	if !ok {
		return nil, errors.NotFound("Provider profile", nil)
	}
	return profile, nil
}

func (r *memoryProviderProfileRepository) List(ctx context.Context) ([]*entity.ProviderProfile, error) {
	return r.table.filter(nil), nil
}

func (r *memoryProviderProfileRepository) Update(ctx context.Context, profile *entity.ProviderProfile) error {
	profile.UpdatedAt = time.Now()
	if !r.table.replace(profile.ID, profile) {
		return errors.NotFound("Provider profile", nil)
	}
	return nil
}
