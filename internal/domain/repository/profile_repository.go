package repository

import (
	"context"

	"bizmatch/internal/domain/entity"
)

type RequesterProfileRepository interface {
	Create(ctx context.Context, profile *entity.RequesterProfile) error
	GetByID(ctx context.Context, id string) (*entity.RequesterProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.RequesterProfile, error)
	Update(ctx context.Context, profile *entity.RequesterProfile) error
}

type ProviderProfileRepository interface {
	Create(ctx context.Context, profile *entity.ProviderProfile) error
	GetByID(ctx context.Context, id string) (*entity.ProviderProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.ProviderProfile, error)
	List(ctx context.Context) ([]*entity.ProviderProfile, error)
	Update(ctx context.Context, profile *entity.ProviderProfile) error
}
