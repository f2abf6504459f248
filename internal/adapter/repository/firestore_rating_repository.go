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

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{
		client: client,
	}
}

// Create keys the document on engagement and rater, so a second rating by the same user
// fails with CONFLICT even when two processes race past the duplicate check.
func (r *firestoreRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	rating.ID = utils.KeyID("rating", rating.EngagementID, rating.FromUserID)
	rating.CreatedAt = time.Now()

	_, err := r.client.Collection("ratings").Doc(rating.ID).Create(ctx, rating)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict(alreadyRated)
		}
		return errors.Internal("Failed to create rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) GetByID(ctx context.Context, id string) (*entity.Rating, error) {
	doc, err := r.client.Collection("ratings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Rating", err)
		}
		return nil, errors.Internal("Failed to get rating", err)
	}

	var rating entity.Rating
	if err := doc.DataTo(&rating); err != nil {
		return nil, errors.Internal("Failed to parse rating data", err)
	}

	return &rating, nil
}

func (r *firestoreRatingRepository) FindByFromUserAndEngagement(ctx context.Context, fromUserID, engagementID string) (*entity.Rating, error) {
	query := r.client.Collection("ratings").
		Where("fromUserId", "==", fromUserID).
		Where("engagementId", "==", engagementID).
		Limit(1)

	return firstDocument[entity.Rating](query.Documents(ctx), "Rating")
}

func (r *firestoreRatingRepository) ListByEngagementID(ctx context.Context, engagementID string) ([]*entity.Rating, error) {
	query := r.client.Collection("ratings").Where("engagementId", "==", engagementID)
	return decodeDocuments[entity.Rating](query.Documents(ctx), "ratings")
}

func (r *firestoreRatingRepository) ListByToUserID(ctx context.Context, toUserID string) ([]*entity.Rating, error) {
	query := r.client.Collection("ratings").Where("toUserId", "==", toUserID).OrderBy("createdAt", firestore.Desc)
	return decodeDocuments[entity.Rating](query.Documents(ctx), "ratings")
}
