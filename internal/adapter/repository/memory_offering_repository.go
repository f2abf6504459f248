package repository

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type memoryOfferingRepository struct {
	table *memoryTable[entity.Offering]
}

func NewMemoryOfferingRepository() repository.OfferingRepository {
	return &memoryOfferingRepository{
		table: newMemoryTable(func(o *entity.Offering) *entity.Offering {
			c := *o
			c.Features = copyStrings(o.Features)
			c.Requirements = copyStrings(o.Requirements)
			c.Specifications = copyStrings(o.Specifications)
			c.Tags = copyStrings(o.Tags)
			return &c
		}),
	}
}

func (r *memoryOfferingRepository) Create(ctx context.Context, offering *entity.Offering) error {
	if offering.ID == "" {
		offering.ID = utils.NewID(offering.Type)
	}
	now := time.Now()
	offering.CreatedAt = now
	offering.UpdatedAt = now
	return r.table.insert(offering.ID, offering)
}

func (r *memoryOfferingRepository) GetByID(ctx context.Context, id string) (*entity.Offering, error) {
	offering, ok := r.table.get(id)
	if !ok {
		return nil, errors.NotFound("Offering", nil)
	}
	return offering, nil
}

func (r *memoryOfferingRepository) List(ctx context.Context, offeringType string) ([]*entity.Offering, error) {
	return r.table.filter(func(o *entity.Offering) bool {
		return offeringType == "" || o.Type == offeringType
	}), nil
}

func (r *memoryOfferingRepository) ListByProviderID(ctx context.Context, providerID string) ([]*entity.Offering, error) {
	return r.table.filter(func(o *entity.Offering) bool { return o.ProviderID == providerID }), nil
}

func (r *memoryOfferingRepository) Update(ctx context.Context, offering *entity.Offering) error {
	offering.UpdatedAt = time.Now()
	if !r.table.replace(offering.ID, offering) {
		return errors.NotFound("Offering", nil)
	}
	return nil
}

func (r *memoryOfferingRepository) Delete(ctx context.Context, id string) error {
	r.table.remove(id)
	return nil
}
