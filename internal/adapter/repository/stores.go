package repository

import (
	"cloud.google.com/go/firestore"

	"bizmatch/internal/domain/repository"
)

// Stores bundles one repository per record kind so the process can switch backends in one place.
type Stores struct {
	Requesters    repository.RequesterProfileRepository
	Providers     repository.ProviderProfileRepository
	Offerings     repository.OfferingRepository
	Conversations repository.ConversationRepository
	Engagements   repository.EngagementRepository
	Ratings       repository.RatingRepository
	Matches       repository.MatchRepository
}

func NewMemoryStores() Stores {
	return Stores{
		Requesters:    NewMemoryRequesterProfileRepository(),
		Providers:     NewMemoryProviderProfileRepository(),
		Offerings:     NewMemoryOfferingRepository(),
		Conversations: NewMemoryConversationRepository(),
		Engagements:   NewMemoryEngagementRepository(),
		Ratings:       NewMemoryRatingRepository(),
		Matches:       NewMemoryMatchRepository(),
	}
}

func NewFirestoreStores(client *firestore.Client) Stores {
	return Stores{
		Requesters:    NewFirestoreRequesterProfileRepository(client),
		Providers:     NewFirestoreProviderProfileRepository(client),
		Offerings:     NewFirestoreOfferingRepository(client),
		Conversations: NewFirestoreConversationRepository(client),
		Engagements:   NewFirestoreEngagementRepository(client),
		Ratings:       NewFirestoreRatingRepository(client),
		Matches:       NewFirestoreMatchRepository(client),
	}
}
