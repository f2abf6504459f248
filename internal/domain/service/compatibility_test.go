package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizmatch/internal/domain/entity"
)

func marketingProvider() *entity.ProviderProfile {
	return &entity.ProviderProfile{
		ID:          "provider_1",
		Services:    []string{"Marketing digital", "SEO"},
		Pricing:     []entity.PriceRange{{Service: "Marketing digital", Min: 1000, Max: 1200}},
		Location:    "madrid",
		Rating:      4.5,
		ReviewCount: 12,
	}
}

func marketingRequester() *entity.RequesterProfile {
	return &entity.RequesterProfile{
		ID:       "requester_1",
		Industry: "retail",
		Size:     entity.SizeSmall,
		Location: "Madrid",
		Needs:    []string{"Marketing digital"},
		Budget:   entity.BudgetRange{Min: 800, Max: 1500},
	}
}

func TestScoreMatch(t *testing.T) {
	// 40 needs + 25 budget + 18 rating + 10 location + 3 reviews
	assert.Equal(t, 96, ScoreMatch(marketingRequester(), marketingProvider()))
}

func TestScoreMatchNilInputs(t *testing.T) {
	assert.Equal(t, 0, ScoreMatch(nil, marketingProvider()))
	assert.Equal(t, 0, ScoreMatch(marketingRequester(), nil))
}

func TestScoreMatchStaysInRange(t *testing.T) {
	provider := marketingProvider()
	provider.Rating = 12
	provider.ReviewCount = 500

	score := ScoreMatch(marketingRequester(), provider)
	assert.LessOrEqual(t, score, 100)
	assert.GreaterOrEqual(t, score, 0)

	provider.Rating = -3
	assert.GreaterOrEqual(t, ScoreMatch(&entity.RequesterProfile{}, provider), 0)
}

func TestNeedsCoverage(t *testing.T) {
	assert.Equal(t, 40.0, NeedsCoverage([]string{"Marketing digital"}, []string{"Marketing digital", "SEO"}))
	assert.Equal(t, 20.0, NeedsCoverage([]string{"marketing", "Contabilidad"}, []string{"Marketing digital"}))
	assert.Equal(t, 0.0, NeedsCoverage(nil, []string{"SEO"}))
	assert.Equal(t, 0.0, NeedsCoverage([]string{}, []string{"SEO"}))
}

func TestNeedsCoverageIsBidirectional(t *testing.T) {
	// the need contains the service name
	assert.Equal(t, 40.0, NeedsCoverage([]string{"SEO para tienda online"}, []string{"seo"}))
}

func TestBudgetFit(t *testing.T) {
	single := []entity.PriceRange{{Min: 1000, Max: 1000}}

	tests := []struct {
		name   string
		budget entity.BudgetRange
		want   float64
	}{
		{"inside tolerance", entity.BudgetRange{Min: 800, Max: 1500}, 25},
		{"slightly low", entity.BudgetRange{Min: 600, Max: 800}, 15},
		{"low", entity.BudgetRange{Min: 400, Max: 600}, 10},
		{"far too low", entity.BudgetRange{Min: 200, Max: 400}, 0},
		{"above upper bound", entity.BudgetRange{Min: 1800, Max: 2200}, 15},
		{"no budget", entity.BudgetRange{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetFit(tt.budget, single))
		})
	}
}

func TestBudgetFitEmptyPricing(t *testing.T) {
	assert.Equal(t, 0.0, BudgetFit(entity.BudgetRange{Min: 800, Max: 1500}, nil))
	assert.Equal(t, 0.0, BudgetFit(entity.BudgetRange{Min: 800, Max: 1500}, []entity.PriceRange{}))
	assert.Equal(t, 0.0, BudgetFit(entity.BudgetRange{Min: 800, Max: 1500}, []entity.PriceRange{{Min: 0, Max: 0}}))
}

func TestBudgetFitUsesMeanMidpoint(t *testing.T) {
	pricing := []entity.PriceRange{{Min: 500, Max: 700}, {Min: 1500, Max: 1700}}
	// provider midpoint 1100, requester midpoint 1150
	assert.Equal(t, 25.0, BudgetFit(entity.BudgetRange{Min: 800, Max: 1500}, pricing))
}

func TestLocationPoints(t *testing.T) {
	assert.Equal(t, 10.0, LocationPoints("Madrid", " madrid "))
	assert.Equal(t, 5.0, LocationPoints("Madrid", "Madrid, Spain"))
	assert.Equal(t, 0.0, LocationPoints("Madrid", "Sevilla"))
	assert.Equal(t, 0.0, LocationPoints("", ""))
	assert.Equal(t, 0.0, LocationPoints("Madrid", ""))
}

func TestRatingAndReviewVolumePoints(t *testing.T) {
	assert.Equal(t, 20.0, RatingPoints(5))
	assert.InDelta(t, 18.0, RatingPoints(4.5), 1e-9)
	assert.Equal(t, 0.0, RatingPoints(0))

	assert.Equal(t, 5.0, ReviewVolumePoints(20))
	assert.Equal(t, 3.0, ReviewVolumePoints(10))
	assert.Equal(t, 1.0, ReviewVolumePoints(5))
	assert.Equal(t, 0.0, ReviewVolumePoints(4))
}

func TestMatchReasons(t *testing.T) {
	reasons := MatchReasons(marketingRequester(), marketingProvider())

	assert.Equal(t, []string{
		"Offers services you need: Marketing digital",
		"Excellent rating (4.5/5)",
		"Located in the same city",
		"Within your budget",
	}, reasons)
}

func TestMatchReasonsDivergeFromScore(t *testing.T) {
	provider := marketingProvider()
	provider.Rating = 4.4
	provider.Location = "Madrid, Spain"

	reasons := MatchReasons(marketingRequester(), provider)

	// rating and partial location still earn points but produce no reason
	assert.Greater(t, RatingPoints(provider.Rating), 0.0)
	assert.Equal(t, 5.0, LocationPoints("Madrid", provider.Location))
	assert.NotContains(t, reasons, "Located in the same city")
	for _, r := range reasons {
		assert.NotContains(t, r, "Excellent rating")
	}
}

func TestMatchReasonsEmpty(t *testing.T) {
	reasons := MatchReasons(&entity.RequesterProfile{}, &entity.ProviderProfile{})
	assert.NotNil(t, reasons)
	assert.Empty(t, reasons)
}
