package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizmatch/internal/domain/entity"
	"bizmatch/pkg/errors"
)

func seedMarketplace(t *testing.T, f *fixture) *entity.RequesterProfile {
	t.Helper()
	ctx := context.Background()

	requester, err := f.profiles.UpsertRequesterProfile(ctx, "req-1", RequesterProfileInput{
		BusinessName: "Tienda Verde",
		Industry:     "retail",
		Size:         entity.SizeSmall,
		Location:     "Barcelona",
		Needs:        []string{"SEO", "Google Analytics"},
		Budget:       entity.BudgetRange{Min: 800, Max: 1500},
	})
	require.NoError(t, err)

	_, err = f.profiles.UpsertProviderProfile(ctx, "prov-bcn", ProviderProfileInput{BusinessName: "Agencia BCN", Location: "Barcelona"})
	require.NoError(t, err)
	_, err = f.profiles.UpsertProviderProfile(ctx, "prov-mad", ProviderProfileInput{BusinessName: "Agencia MAD", Location: "Madrid"})
	require.NoError(t, err)

	publish := func(userID string, input OfferingInput) *entity.Offering {
		offering, err := f.profiles.PublishOffering(ctx, userID, input)
		require.NoError(t, err)
		return offering
	}

	publish("prov-bcn", OfferingInput{
		Type: entity.OfferingTypeService, Name: "Posicionamiento SEO", Category: "Marketing digital",
		MinPrice: 1000, MaxPrice: 1200, Features: []string{"SEO on-page", "Informe de Google Analytics"},
	})
	publish("prov-bcn", OfferingInput{
		Type: entity.OfferingTypeProduct, Name: "Plantilla de tienda online", Category: "Software",
		MinPrice: 600, Specifications: []string{"Compatible con SEO"},
	})
	publish("prov-bcn", OfferingInput{
		Type: entity.OfferingTypeService, Name: "Consultoría premium", Category: "Consultoría",
		MinPrice: 5000, MaxPrice: 8000,
	})
	publish("prov-mad", OfferingInput{
		Type: entity.OfferingTypeService, Name: "SEO Madrid", Category: "Marketing digital",
		MinPrice: 900, MaxPrice: 1100, Features: []string{"SEO"},
	})
	hidden := publish("prov-bcn", OfferingInput{
		Type: entity.OfferingTypeService, Name: "SEO pausado", Category: "Marketing digital",
		MinPrice: 900, MaxPrice: 1000, Features: []string{"SEO"},
	})
	_, err = f.profiles.SetOfferingStatus(ctx, "prov-bcn", hidden.ID, entity.OfferingStatusInactive, nil)
	require.NoError(t, err)

	return requester
}

func TestFindSmartMatchesUnknownRequester(t *testing.T) {
	f := newFixture(t)

	results, err := f.matching.FindSmartMatches(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSmartMatches(t *testing.T) {
	f := newFixture(t)
	requester := seedMarketplace(t, f)

	for _, id := range []string{requester.ID, requester.UserID} {
		results, err := f.matching.FindSmartMatches(context.Background(), id)
		require.NoError(t, err)

		// Over-budget and out-of-town offerings are pre-filtered, inactive ones are never eligible.
		require.Len(t, results, 2)
		assert.Equal(t, "Posicionamiento SEO", results[0].Offering.Name)
		assert.Equal(t, "Plantilla de tienda online", results[1].Offering.Name)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)

		top := results[0]
		require.NotNil(t, top.Provider)
		assert.Equal(t, "Agencia BCN", top.Provider.BusinessName)
		assert.InDelta(t, 0.9, top.Breakdown.Industry, 1e-9)
		assert.InDelta(t, 1.0, top.Breakdown.Needs, 1e-9)
		assert.InDelta(t, 1.0, top.Breakdown.Budget, 1e-9)
		assert.InDelta(t, 1.0, top.Breakdown.Location, 1e-9)
		assert.Contains(t, top.Reasons, "Fits your budget")

		for _, r := range results {
			assert.GreaterOrEqual(t, r.Score, 0.1)
			assert.LessOrEqual(t, r.Score, 1.0)
		}
	}
}

func TestFindMatchesPersistsRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	requester := seedMarketplace(t, f)

	matches, err := f.matching.FindMatches(ctx, requester.UserID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	for _, m := range matches {
		assert.Equal(t, entity.MatchStatusPending, m.Status)
		assert.Equal(t, requester.ID, m.RequesterID)
		assert.LessOrEqual(t, m.Score, 100)
	}

	accepted, err := f.matching.UpdateMatchStatus(ctx, matches[0].ID, entity.MatchStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchStatusAccepted, accepted.Status)

	again, err := f.matching.FindMatches(ctx, requester.ID)
	require.NoError(t, err)
	require.Len(t, again, 2)

	stored, err := f.matchRepo.ListByRequesterID(ctx, requester.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2, "re-running refreshes existing records")
	for _, m := range again {
		if m.ID == accepted.ID {
			assert.Equal(t, entity.MatchStatusAccepted, m.Status)
		}
	}

	_, err = f.matching.UpdateMatchStatus(ctx, matches[0].ID, "archived")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = f.matching.UpdateMatchStatus(ctx, "match_missing", entity.MatchStatusRejected)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestFindMatchesUnknownRequester(t *testing.T) {
	f := newFixture(t)

	matches, err := f.matching.FindMatches(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestScoreMatchPassthrough(t *testing.T) {
	f := newFixture(t)
	requester := &entity.RequesterProfile{Needs: []string{"Marketing digital"}}
	provider := &entity.ProviderProfile{Services: []string{"Marketing digital", "SEO"}}

	assert.Equal(t, 40, f.matching.ScoreMatch(requester, provider))
	assert.Equal(t, []string{"Offers services you need: Marketing digital"}, f.matching.MatchReasons(requester, provider))
}
