package repository

import (
	"context"

	"bizmatch/internal/domain/entity"
)

type EngagementRepository interface {
	Create(ctx context.Context, engagement *entity.Engagement) error
	GetByID(ctx context.Context, id string) (*entity.Engagement, error)
	GetByConversationID(ctx context.Context, conversationID string) (*entity.Engagement, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Engagement, error)
	Update(ctx context.Context, engagement *entity.Engagement) error
}
