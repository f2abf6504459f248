package repository

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type memoryRatingRepository struct {
	table *memoryTable[entity.Rating]
}

func NewMemoryRatingRepository() repository.RatingRepository {
	return &memoryRatingRepository{
		table: newMemoryTable(func(r *entity.Rating) *entity.Rating {
			out := *r
			return &out
		}),
	}
}

func (r *memoryRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if rating.ID == "" {
		rating.ID = utils.NewID("rating")
	}
	rating.CreatedAt = time.Now()
	return r.table.insertUnique(rating.ID, rating, func(existing *entity.Rating) bool {
		return existing.FromUserID == rating.FromUserID && existing.EngagementID == rating.EngagementID
	}, alreadyRated)
}

func (r *memoryRatingRepository) GetByID(ctx context.Context, id string) (*entity.Rating, error) {
	rating, ok := r.table.get(id)
	if !ok {
		return nil, errors.NotFound("Rating", nil)
	}
	return rating, nil
}

func (r *memoryRatingRepository) FindByFromUserAndEngagement(ctx context.Context, fromUserID, engagementID string) (*entity.Rating, error) {
	rating, ok := r.table.first(func(rt *entity.Rating) bool {
		return rt.FromUserID == fromUserID && rt.EngagementID == engagementID
	})
	if !ok {
		return nil, errors.NotFound("Rating", nil)
	}
	return rating, nil
}

func (r *memoryRatingRepository) ListByEngagementID(ctx context.Context, engagementID string) ([]*entity.Rating, error) {
	return r.table.filter(func(rt *entity.Rating) bool { return rt.EngagementID == engagementID }), nil
}

func (r *memoryRatingRepository) ListByToUserID(ctx context.Context, toUserID string) ([]*entity.Rating, error) {
	return r.table.filter(func(rt *entity.Rating) bool { return rt.ToUserID == toUserID }), nil
}
