package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type firestoreEngagementRepository struct {
	client *firestore.Client
}

func NewFirestoreEngagementRepository(client *firestore.Client) repository.EngagementRepository {
	return &firestoreEngagementRepository{
		client: client,
	}
}

func (r *firestoreEngagementRepository) Create(ctx context.Context, engagement *entity.Engagement) error {
	if engagement.ID == "" {
		engagement.ID = utils.NewID("engagement")
	}

	now := time.Now()
	engagement.CreatedAt = now
	engagement.UpdatedAt = now

	_, err := r.client.Collection("engagements").Doc(engagement.ID).Set(ctx, engagement)
	if err != nil {
		return errors.Internal("Failed to create engagement", err)
	}

	return nil
}

func (r *firestoreEngagementRepository) GetByID(ctx context.Context, id string) (*entity.Engagement, error) {
	doc, err := r.client.Collection("engagements").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Engagement", err)
		}
		return nil, errors.Internal("Failed to get engagement", err)
	}

	var engagement entity.Engagement
	if err := doc.DataTo(&engagement); err != nil {
		return nil, errors.Internal("Failed to parse engagement data", err)
	}

	return &engagement, nil
}

func (r *firestoreEngagementRepository) GetByConversationID(ctx context.Context, conversationID string) (*entity.Engagement, error) {
	query := r.client.Collection("engagements").Where("conversationId", "==", conversationID).Limit(1)
	return firstDocument[entity.Engagement](query.Documents(ctx), "Engagement")
}

func (r *firestoreEngagementRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Engagement, error) {
	seen := make(map[string]bool)
	var engagements []*entity.Engagement

	for _, field := range []string{"requesterId", "providerId"} {
		query := r.client.Collection("engagements").Where(field, "==", userID)
		rows, err := decodeDocuments[entity.Engagement](query.Documents(ctx), "engagements")
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if !seen[row.ID] {
				seen[row.ID] = true
				engagements = append(engagements, row)
			}
		}
	}

	return engagements, nil
}

func (r *firestoreEngagementRepository) Update(ctx context.Context, engagement *entity.Engagement) error {
	engagement.UpdatedAt = time.Now()

	_, err := r.client.Collection("engagements").Doc(engagement.ID).Set(ctx, engagement)
	if err != nil {
		return errors.Internal("Failed to update engagement", err)
	}

	return nil
}
