package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmatch/internal/domain/entity"
	"bizmatch/pkg/errors"
)

func TestMemoryRepositoriesReturnCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProviderProfileRepository()

	profile := &entity.ProviderProfile{UserID: "u1", Services: []string{"SEO"}}
	require.NoError(t, repo.Create(ctx, profile))
	assert.True(t, strings.HasPrefix(profile.ID, "provider_"))

	profile.Services[0] = "mutated"
	stored, err := repo.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"SEO"}, stored.Services)

	stored.Services = append(stored.Services, "Ads")
	again, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, again.Services, 1)
}

func TestMemoryCreateRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConversationRepository()

	require.NoError(t, repo.Create(ctx, &entity.Conversation{ID: "conversation_fixed"}))
	err := repo.Create(ctx, &entity.Conversation{ID: "conversation_fixed"})
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestMemoryUpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()

	err := NewMemoryEngagementRepository().Update(ctx, &entity.Engagement{ID: "engagement_missing"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = NewMemoryRatingRepository().FindByFromUserAndEngagement(ctx, "u1", "e1")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestMemoryConversationMessages(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConversationRepository()

	a := &entity.Conversation{RequesterID: "r1", ProviderID: "p1", MatchID: "m1"}
	b := &entity.Conversation{RequesterID: "r2", ProviderID: "p1"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	base := time.Now()
	require.NoError(t, repo.CreateMessage(ctx, &entity.Message{ConversationID: a.ID, Content: "second", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, repo.CreateMessage(ctx, &entity.Message{ConversationID: a.ID, Content: "first", CreatedAt: base}))
	require.NoError(t, repo.CreateMessage(ctx, &entity.Message{
		ConversationID: b.ID,
		Type:           entity.MessageTypeQuote,
		Quote:          &entity.Quote{ID: "quote_1", Status: entity.QuoteStatusPending},
	}))

	messages, err := repo.GetMessages(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)

	found, err := repo.FindMessageByQuoteID(ctx, "", "quote_1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ConversationID)

	_, err = repo.FindMessageByQuoteID(ctx, a.ID, "quote_1")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	byMatch, err := repo.FindByRequesterAndMatch(ctx, "r1", "m1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byMatch.ID)

	forProvider, err := repo.ListByUserID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, forProvider, 2)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	messages, err = repo.GetMessages(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMemoryOfferingListByType(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOfferingRepository()

	require.NoError(t, repo.Create(ctx, &entity.Offering{Type: entity.OfferingTypeService, ProviderID: "p1"}))
	require.NoError(t, repo.Create(ctx, &entity.Offering{Type: entity.OfferingTypeProduct, ProviderID: "p1"}))

	services, err := repo.List(ctx, entity.OfferingTypeService)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.True(t, strings.HasPrefix(services[0].ID, "service_"))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, services[0].ID))
	owned, err := repo.ListByProviderID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestMemoryCreateEnforcesNaturalKeys(t *testing.T) {
	ctx := context.Background()

	ratings := NewMemoryRatingRepository()
	require.NoError(t, ratings.Create(ctx, &entity.Rating{FromUserID: "u1", EngagementID: "e1", Score: 5}))
	err := ratings.Create(ctx, &entity.Rating{FromUserID: "u1", EngagementID: "e1", Score: 2})
	assert.True(t, errors.Is(err, errors.CodeConflict))
	require.NoError(t, ratings.Create(ctx, &entity.Rating{FromUserID: "u2", EngagementID: "e1", Score: 4}))

	conversations := NewMemoryConversationRepository()
	require.NoError(t, conversations.Create(ctx, &entity.Conversation{RequesterID: "r1", MatchID: "m1"}))
	err = conversations.Create(ctx, &entity.Conversation{RequesterID: "r1", MatchID: "m1"})
	assert.True(t, errors.Is(err, errors.CodeConflict))
	require.NoError(t, conversations.Create(ctx, &entity.Conversation{RequesterID: "r2", MatchID: "m1"}))
	require.NoError(t, conversations.Create(ctx, &entity.Conversation{RequesterID: "r1"}))
	require.NoError(t, conversations.Create(ctx, &entity.Conversation{RequesterID: "r1"}))
}
