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

type firestoreMatchRepository struct {
	client *firestore.Client
}

func NewFirestoreMatchRepository(client *firestore.Client) repository.MatchRepository {
	return &firestoreMatchRepository{
		client: client,
	}
}

func (r *firestoreMatchRepository) Create(ctx context.Context, match *entity.MatchRecord) error {
	if match.ID == "" {
		match.ID = utils.NewID("match")
	}

	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now

	_, err := r.client.Collection("matches").Doc(match.ID).Set(ctx, match)
	if err != nil {
		return errors.Internal("Failed to create match", err)
	}

	return nil
}

func (r *firestoreMatchRepository) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	doc, err := r.client.Collection("matches").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Match", err)
		}
		return nil, errors.Internal("Failed to get match", err)
	}

	var match entity.MatchRecord
	if err := doc.DataTo(&match); err != nil {
		return nil, errors.Internal("Failed to parse match data", err)
	}

	return &match, nil
}

func (r *firestoreMatchRepository) ListByRequesterID(ctx context.Context, requesterID string) ([]*entity.MatchRecord, error) {
	query := r.client.Collection("matches").Where("requesterId", "==", requesterID).OrderBy("score", firestore.Desc)
	return decodeDocuments[entity.MatchRecord](query.Documents(ctx), "matches")
}

func (r *firestoreMatchRepository) Update(ctx context.Context, match *entity.MatchRecord) error {
	match.UpdatedAt = time.Now()

	_, err := r.client.Collection("matches").Doc(match.ID).Set(ctx, match)
	if err != nil {
		return errors.Internal("Failed to update match", err)
	}

	return nil
}
