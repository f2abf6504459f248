package service

import (
	"fmt"
	"math"
	"strings"

	"bizmatch/internal/domain/entity"
)

// Point budgets of the coarse 0-100 match score.
const (
	needsPoints    = 40.0
	budgetPoints   = 25.0
	ratingPoints   = 20.0
	locationPoints = 10.0
	reviewPoints   = 5.0

	excellentRating = 4.5
)

// ScoreMatch computes the coarse 0-100 compatibility between a requester and a provider.
// Each factor is clamped to its own budget before summing.
func ScoreMatch(requester *entity.RequesterProfile, provider *entity.ProviderProfile) int {
	if requester == nil || provider == nil {
		return 0
	}

	total := NeedsCoverage(requester.Needs, provider.Services) +
		BudgetFit(requester.Budget, provider.Pricing) +
		RatingPoints(provider.Rating) +
		LocationPoints(requester.Location, provider.Location) +
		ReviewVolumePoints(provider.ReviewCount)

	return int(clamp(math.Round(total), 0, 100))
}

// NeedsCoverage scales the fraction of needs found among the service names to 0-40.
// No declared needs earns nothing; the points are not redistributed.
func NeedsCoverage(needs, services []string) float64 {
	if len(needs) == 0 {
		return 0
	}

	covered := 0
	for _, need := range needs {
		if matchesAny(need, services) {
			covered++
		}
	}

	return clamp(float64(covered)/float64(len(needs))*needsPoints, 0, needsPoints)
}

// BudgetFit compares the requester budget midpoint with the mean midpoint of the provider's
// price entries. Only a requester midpoint below expectation loses points tier by tier.
func BudgetFit(budget entity.BudgetRange, pricing []entity.PriceRange) float64 {
	providerMid, ok := meanPricingMidpoint(pricing)
	if !ok || providerMid <= 0 {
		return 0
	}

	ratio := budget.Mid() / providerMid
	switch {
	case math.IsNaN(ratio):
		return 0
	case ratio >= 0.8 && ratio <= 1.5:
		return budgetPoints
	case ratio >= 0.6:
		return 15
	case ratio >= 0.4:
		return 10
	default:
		return 0
	}
}

func RatingPoints(rating float64) float64 {
	return clamp(rating/5*ratingPoints, 0, ratingPoints)
}

func LocationPoints(requesterLocation, providerLocation string) float64 {
	a, b := normalize(requesterLocation), normalize(providerLocation)
	switch {
	case a == "" || b == "":
		return 0
	case a == b:
		return locationPoints
	case strings.Contains(a, b) || strings.Contains(b, a):
		return locationPoints / 2
	default:
		return 0
	}
}

func ReviewVolumePoints(reviewCount int) float64 {
	switch {
	case reviewCount >= 20:
		return reviewPoints
	case reviewCount >= 10:
		return 3
	case reviewCount >= 5:
		return 1
	default:
		return 0
	}
}

// MatchReasons explains a match in plain words. Its thresholds are evaluated on their own and
// can disagree with ScoreMatch about which factors count.
func MatchReasons(requester *entity.RequesterProfile, provider *entity.ProviderProfile) []string {
	reasons := []string{}
	if requester == nil || provider == nil {
		return reasons
	}

	var matched []string
	for _, service := range provider.Services {
		if matchesAny(service, requester.Needs) {
			matched = append(matched, service)
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, "Offers services you need: "+strings.Join(matched, ", "))
	}

	if provider.Rating >= excellentRating {
		reasons = append(reasons, fmt.Sprintf("Excellent rating (%.1f/5)", provider.Rating))
	}

	if loc := normalize(requester.Location); loc != "" && loc == normalize(provider.Location) {
		reasons = append(reasons, "Located in the same city")
	}

	if mid, ok := meanPricingMidpoint(provider.Pricing); ok &&
		mid >= requester.Budget.Min && mid <= requester.Budget.Max {
		reasons = append(reasons, "Within your budget")
	}

	return reasons
}

func meanPricingMidpoint(pricing []entity.PriceRange) (float64, bool) {
	if len(pricing) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, p := range pricing {
		sum += (p.Min + p.Max) / 2
	}
	return sum / float64(len(pricing)), true
}

// matchesAny reports whether value and any candidate contain one another, ignoring case.
func matchesAny(value string, candidates []string) bool {
	v := normalize(value)
	if v == "" {
		return false
	}
	for _, c := range candidates {
		c = normalize(c)
		if c == "" {
			continue
		}
		if strings.Contains(v, c) || strings.Contains(c, v) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
