package repository

import (
	"context"

	"bizmatch/internal/domain/entity"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.MatchRecord) error
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
	ListByRequesterID(ctx context.Context, requesterID string) ([]*entity.MatchRecord, error)
	Update(ctx context.Context, match *entity.MatchRecord) error
}
