package repository

import (
	"context"

	"bizmatch/internal/domain/entity"
)

type OfferingRepository interface {
	Create(ctx context.Context, offering *entity.Offering) error
	GetByID(ctx context.Context, id string) (*entity.Offering, error)
	// List returns every offering, optionally narrowed to one type ("" means all).
	List(ctx context.Context, offeringType string) ([]*entity.Offering, error)
	ListByProviderID(ctx context.Context, providerID string) ([]*entity.Offering, error)
	Update(ctx context.Context, offering *entity.Offering) error
	Delete(ctx context.Context, id string) error
}
