package service

import (
	"math"
	"strings"

	"bizmatch/internal/domain/entity"
)

// Dimension weights of the smart match score. They sum to 1.
const (
	NeedsWeight    = 0.30
	BudgetWeight   = 0.25
	LocationWeight = 0.20
	IndustryWeight = 0.15
	SizeWeight     = 0.10

	// MinSmartScore is the cut-off below which a candidate is discarded.
	MinSmartScore = 0.1

	neutralScore    = 0.5
	reasonThreshold = 0.7

	// sizeReferencePrice is the offering price a medium business is expected to pay.
	sizeReferencePrice = 2000.0
)

var sizeMultipliers = map[string]float64{
	entity.SizeMicro:  0.3,
	entity.SizeSmall:  0.6,
	entity.SizeMedium: 1.0,
}

type CompatibilityBreakdown struct {
	Needs    float64 `json:"needs"`
	Budget   float64 `json:"budget"`
	Location float64 `json:"location"`
	Industry float64 `json:"industry"`
	Size     float64 `json:"size"`
}

type SmartScoreResult struct {
	Score     float64                `json:"match_score"`
	Breakdown CompatibilityBreakdown `json:"compatibility"`
	Reasons   []string               `json:"reasons"`
}

// SmartScore rates one offering against a requester on five [0,1] dimensions and returns
// their weighted sum, also in [0,1].
func SmartScore(requester *entity.RequesterProfile, offering *entity.Offering) SmartScoreResult {
	if requester == nil || offering == nil {
		return SmartScoreResult{Reasons: []string{}}
	}

	b := CompatibilityBreakdown{
		Needs:    NeedsScore(requester.Needs, offering),
		Budget:   BudgetScore(requester.Budget, offering.MinPrice, offering.MaxPrice),
		Location: LocationScore(requester.Location, offering.Location),
		Industry: IndustryScore(requester.Industry, offering.Category),
		Size:     SizeScore(requester.Size, offering.AveragePrice()),
	}

	score := b.Needs*NeedsWeight +
		b.Budget*BudgetWeight +
		b.Location*LocationWeight +
		b.Industry*IndustryWeight +
		b.Size*SizeWeight

	return SmartScoreResult{
		Score:     clamp(score, 0, 1),
		Breakdown: b,
		Reasons:   smartReasons(requester, b),
	}
}

// NeedsScore is the fraction of needs found among the offering's features and
// requirements/specifications. No declared needs is neutral.
func NeedsScore(needs []string, offering *entity.Offering) float64 {
	if len(needs) == 0 {
		return neutralScore
	}

	corpus := make([]string, 0, len(offering.Features)+len(offering.Requirements)+len(offering.Specifications))
	corpus = append(corpus, offering.Features...)
	corpus = append(corpus, offering.Requirements...)
	corpus = append(corpus, offering.Specifications...)

	found := 0
	for _, need := range needs {
		if matchesAny(need, corpus) {
			found++
		}
	}
	return clamp(float64(found)/float64(len(needs)), 0, 1)
}

// BudgetScore is 1 when the price interval sits inside the budget, the overlapping share of
// the price interval when they overlap, and otherwise half of a linear falloff over the
// distance to the nearest budget edge measured in budget widths.
func BudgetScore(budget entity.BudgetRange, minPrice, maxPrice float64) float64 {
	bMin, bMax := orderedPair(budget.Min, budget.Max)
	if bMin <= 0 && bMax <= 0 {
		return neutralScore
	}
	oMin, oMax := orderedPair(minPrice, maxPrice)

	if oMin >= bMin && oMax <= bMax {
		return 1
	}

	overlap := math.Min(oMax, bMax) - math.Max(oMin, bMin)
	if overlap > 0 {
		return clamp(overlap/(oMax-oMin), 0, 1)
	}

	distance := bMin - oMax
	if oMin > bMax {
		distance = oMin - bMax
	}
	width := bMax - bMin
	if width <= 0 {
		width = bMax
	}
	if width <= 0 {
		return 0
	}
	return clamp(0.5*(1-distance/width), 0, 1)
}

// LocationScore compares free-text locations, falling back to comma separated segments
// (e.g. "Gràcia, Barcelona, Spain") when the full strings differ.
func LocationScore(requesterLocation, offeringLocation string) float64 {
	a, b := normalize(requesterLocation), normalize(offeringLocation)
	if a == "" || b == "" {
		return neutralScore
	}
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}
	if sameSegment(a, b, 1) {
		return 0.6
	}
	if sameSegment(a, b, 2) {
		return 0.4
	}
	return 0.2
}

func IndustryScore(industry, category string) float64 {
	ind, cat := normalize(industry), normalize(category)
	if ind == "" || cat == "" {
		return neutralScore
	}
	for _, relevant := range RelevantCategories(ind) {
		if normalize(relevant) == cat {
			return 0.9
		}
	}
	if strings.Contains(ind, cat) || strings.Contains(cat, ind) {
		return 0.7
	}
	return 0.3
}

// SizeScore checks the offering's average price against what a business of the given size is
// expected to spend. Unknown sizes are treated as small.
func SizeScore(size string, averagePrice float64) float64 {
	multiplier, ok := sizeMultipliers[normalize(size)]
	if !ok {
		multiplier = sizeMultipliers[entity.SizeSmall]
	}
	expected := sizeReferencePrice * multiplier

	if math.Abs(averagePrice-expected)/expected <= 0.5 {
		return 1
	}
	return 0.6
}

func smartReasons(requester *entity.RequesterProfile, b CompatibilityBreakdown) []string {
	reasons := []string{}
	if b.Needs > reasonThreshold {
		reasons = append(reasons, "Covers your stated needs")
	}
	if b.Budget > reasonThreshold {
		reasons = append(reasons, "Fits your budget")
	}
	if b.Location > reasonThreshold {
		reasons = append(reasons, "Close to your location")
	}
	if b.Industry > reasonThreshold {
		reasons = append(reasons, "Relevant for the "+requester.Industry+" industry")
	}
	if b.Size > reasonThreshold {
		reasons = append(reasons, "Priced for a "+sizeLabel(requester.Size)+" business")
	}
	return reasons
}

func sizeLabel(size string) string {
	if _, ok := sizeMultipliers[normalize(size)]; ok {
		return normalize(size)
	}
	return entity.SizeSmall
}

func sameSegment(a, b string, index int) bool {
	as, bs := strings.Split(a, ","), strings.Split(b, ",")
	if len(as) <= index || len(bs) <= index {
		return false
	}
	sa, sb := strings.TrimSpace(as[index]), strings.TrimSpace(bs[index])
	return sa != "" && sa == sb
}

func orderedPair(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
