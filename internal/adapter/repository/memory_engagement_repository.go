package repository

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type memoryEngagementRepository struct {
	table *memoryTable[entity.Engagement]
}

func NewMemoryEngagementRepository() repository.EngagementRepository {
	return &memoryEngagementRepository{
		table: newMemoryTable(func(e *entity.Engagement) *entity.Engagement {
			out := *e
			if e.EndDate != nil {
				endDate := *e.EndDate
				out.EndDate = &endDate
			}
			return &out
		}),
	}
}

func (r *memoryEngagementRepository) Create(ctx context.Context, engagement *entity.Engagement) error {
	if engagement.ID == "" {
		engagement.ID = utils.NewID("engagement")
	}
	now := time.Now()
	engagement.CreatedAt = now
	engagement.UpdatedAt = now
	return r.table.insert(engagement.ID, engagement)
}

func (r *memoryEngagementRepository) GetByID(ctx context.Context, id string) (*entity.Engagement, error) {
	engagement, ok := r.table.get(id)
	if !ok {
		return nil, errors.NotFound("Engagement", nil)
	}
	return engagement, nil
}

func (r *memoryEngagementRepository) GetByConversationID(ctx context.Context, conversationID string) (*entity.Engagement, error) {
	engagement, ok := r.table.first(func(e *entity.Engagement) bool { return e.ConversationID == conversationID })
	if !ok {
		return nil, errors.NotFound("Engagement", nil)
	}
	return engagement, nil
}

func (r *memoryEngagementRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Engagement, error) {
	return r.table.filter(func(e *entity.Engagement) bool { return e.HasParty(userID) }), nil
}

func (r *memoryEngagementRepository) Update(ctx context.Context, engagement *entity.Engagement) error {
	engagement.UpdatedAt = time.Now()
	if !r.table.replace(engagement.ID, engagement) {
		return errors.NotFound("Engagement", nil)
	}
	return nil
}
