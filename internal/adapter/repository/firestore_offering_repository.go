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

type firestoreOfferingRepository struct {
	client *firestore.Client
}

func NewFirestoreOfferingRepository(client *firestore.Client) repository.OfferingRepository {
	return &firestoreOfferingRepository{
		client: client,
	}
}

func (r *firestoreOfferingRepository) Create(ctx context.Context, offering *entity.Offering) error {
	if offering.ID == "" {
		offering.ID = utils.NewID(offering.Type)
	}

	now := time.Now()
	offering.CreatedAt = now
	offering.UpdatedAt = now

	_, err := r.client.Collection("offerings").Doc(offering.ID).Set(ctx, offering)
	if err != nil {
		return errors.Internal("Failed to create offering", err)
	}

	return nil
}

func (r *firestoreOfferingRepository) GetByID(ctx context.Context, id string) (*entity.Offering, error) {
	doc, err := r.client.Collection("offerings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Offering", err)
		}
		return nil, errors.Internal("Failed to get offering", err)
	}

	var offering entity.Offering
	if err := doc.DataTo(&offering); err != nil {
		return nil, errors.Internal("Failed to parse offering data", err)
	}

	return &offering, nil
}

func (r *firestoreOfferingRepository) List(ctx context.Context, offeringType string) ([]*entity.Offering, error) {
	query := r.client.Collection("offerings").Query
	if offeringType != "" {
		query = query.Where("type", "==", offeringType)
	}
	return decodeDocuments[entity.Offering](query.Documents(ctx), "offerings")
}

func (r *firestoreOfferingRepository) ListByProviderID(ctx context.Context, providerID string) ([]*entity.Offering, error) {
	query := r.client.Collection("offerings").Where("providerId", "==", providerID)
	return decodeDocuments[entity.Offering](query.Documents(ctx), "offerings")
}

func (r *firestoreOfferingRepository) Update(ctx context.Context, offering *entity.Offering) error {
	offering.UpdatedAt = time.Now()

	_, err := r.client.Collection("offerings").Doc(offering.ID).Set(ctx, offering)
	if err != nil {
		return errors.Internal("Failed to update offering", err)
	}

	return nil
}

func (r *firestoreOfferingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("offerings").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete offering", err)
	}

	return nil
}
