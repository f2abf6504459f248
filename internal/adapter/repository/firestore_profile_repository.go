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

type firestoreRequesterProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreRequesterProfileRepository(client *firestore.Client) repository.RequesterProfileRepository {
	return &firestoreRequesterProfileRepository{
		client: client,
	}
}

func (r *firestoreRequesterProfileRepository) Create(ctx context.Context, profile *entity.RequesterProfile) error {
	if profile.ID == "" {
		profile.ID = utils.NewID("requester")
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.client.Collection("requester_profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to create requester profile", err)
	}

	return nil
}

func (r *firestoreRequesterProfileRepository) GetByID(ctx context.Context, id string) (*entity.RequesterProfile, error) {
	doc, err := r.client.Collection("requester_profiles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Requester profile", err)
		}
		return nil, errors.Internal("Failed to get requester profile", err)
	}

	var profile entity.RequesterProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse requester profile data", err)
	}

	return &profile, nil
}

func (r *firestoreRequesterProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.RequesterProfile, error) {
	query := r.client.Collection("requester_profiles").Where("userId", "==", userID).Limit(1)
	return firstDocument[entity.RequesterProfile](query.Documents(ctx), "Requester profile")
}

func (r *firestoreRequesterProfileRepository) Update(ctx context.Context, profile *entity.RequesterProfile) error {
	profile.UpdatedAt = time.Now()

	_, err := r.client.Collection("requester_profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to update requester profile", err)
	}

	return nil
}

type firestoreProviderProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProviderProfileRepository(client *firestore.Client) repository.ProviderProfileRepository {
	return &firestoreProviderProfileRepository{
		client: client,
	}
}

func (r *firestoreProviderProfileRepository) Create(ctx context.Context, profile *entity.ProviderProfile) error {
	if profile.ID == "" {
		profile.ID = utils.NewID("provider")
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.client.Collection("provider_profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to create provider profile", err)
	}

	return nil
}

func (r *firestoreProviderProfileRepository) GetByID(ctx context.Context, id string) (*entity.ProviderProfile, error) {
	doc, err := r.client.Collection("provider_profiles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Provider profile", err)
		}
		return nil, errors.Internal("Failed to get provider profile", err)
	}

	var profile entity.ProviderProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse provider profile data", err)
	}

	return &profile, nil
}

func (r *firestoreProviderProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.ProviderProfile, error) {
	query := r.client.Collection("provider_profiles").Where("userId", "==", userID).Limit(1)
	return firstDocument[entity.ProviderProfile](query.Documents(ctx), "Provider profile")
}

func (r *firestoreProviderProfileRepository) List(ctx context.Context) ([]*entity.ProviderProfile, error) {
	return decodeDocuments[entity.ProviderProfile](r.client.Collection("provider_profiles").Documents(ctx), "provider profiles")
}

func (r *firestoreProviderProfileRepository) Update(ctx context.Context, profile *entity.ProviderProfile) error {
	profile.UpdatedAt = time.Now()

	_, err := r.client.Collection("provider_profiles").Doc(profile.ID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to update provider profile", err)
	}

	return nil
}
