package repository

import (
	"context"

	"bizmatch/internal/domain/entity"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	GetByID(ctx context.Context, id string) (*entity.Rating, error)
	FindByFromUserAndEngagement(ctx context.Context, fromUserID, engagementID string) (*entity.Rating, error)
	ListByEngagementID(ctx context.Context, engagementID string) ([]*entity.Rating, error)
	ListByToUserID(ctx context.Context, toUserID string) ([]*entity.Rating, error)
}
