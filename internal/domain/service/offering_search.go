package service

import (
	"sort"
	"strings"

	"bizmatch/internal/domain/entity"
)

// SearchFilter narrows the offering catalog. Zero values mean "no filter".
type SearchFilter struct {
	Term         string   `json:"term,omitempty"`
	Category     string   `json:"category,omitempty"`
	MaxPrice     float64  `json:"max_price,omitempty"`
	Type         string   `json:"type,omitempty"`
	DeliveryTime string   `json:"delivery_time,omitempty"`
	Features     []string `json:"features,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Location     string   `json:"location,omitempty"`
	IsAvailable  *bool    `json:"is_available,omitempty"`
}

type OfferingResult struct {
	Offering *entity.Offering        `json:"offering"`
	Provider *entity.ProviderProfile `json:"provider,omitempty"`
}

// SearchOfferings filters offerings and pairs each survivor with its provider (nil when the
// provider is unknown). Only active, available offerings are ever returned.
func SearchOfferings(offerings []*entity.Offering, providers map[string]*entity.ProviderProfile, filter SearchFilter) []OfferingResult {
	results := []OfferingResult{}
	for _, o := range offerings {
		if o == nil || !o.Eligible() || !filter.matches(o) {
			continue
		}
		results = append(results, OfferingResult{Offering: o, Provider: providers[o.ProviderID]})
	}

	term := normalize(filter.Term)
	sort.SliceStable(results, func(i, j int) bool {
		ni, nj := normalize(results[i].Offering.Name), normalize(results[j].Offering.Name)
		if term != "" {
			ri, rj := nameRank(ni, term), nameRank(nj, term)
			if ri != rj {
				return ri < rj
			}
		}
		return ni < nj
	})

	return results
}

func (f SearchFilter) matches(o *entity.Offering) bool {
	if term := normalize(f.Term); term != "" && !offeringContainsTerm(o, term) {
		return false
	}
	if f.Category != "" && !containsFold(o.Category, f.Category) {
		return false
	}
	if f.MaxPrice > 0 && o.MinPrice > f.MaxPrice {
		return false
	}
	if f.Type != "" && normalize(o.Type) != normalize(f.Type) {
		return false
	}
	if f.DeliveryTime != "" && !containsFold(o.DeliveryTime, f.DeliveryTime) {
		return false
	}
	if len(f.Features) > 0 && !sharesAny(o.Features, f.Features) {
		return false
	}
	if len(f.Tags) > 0 && !sharesAny(o.Tags, f.Tags) {
		return false
	}
	if f.Location != "" && !containsFold(o.Location, f.Location) {
		return false
	}
	if f.IsAvailable != nil && o.IsAvailable != *f.IsAvailable {
		return false
	}
	return true
}

func offeringContainsTerm(o *entity.Offering, term string) bool {
	if strings.Contains(normalize(o.Name), term) ||
		strings.Contains(normalize(o.Description), term) ||
		strings.Contains(normalize(o.Category), term) {
		return true
	}
	for _, values := range [][]string{o.Tags, o.Features} {
		for _, v := range values {
			if strings.Contains(normalize(v), term) {
				return true
			}
		}
	}
	return false
}

// nameRank orders exact name matches before names containing the term, then everything else.
func nameRank(name, term string) int {
	switch {
	case name == term:
		return 0
	case strings.Contains(name, term):
		return 1
	default:
		return 2
	}
}

// sharesAny reports whether any wanted value is contained in one of the offering's values.
func sharesAny(values, wanted []string) bool {
	for _, w := range wanted {
		for _, v := range values {
			if containsFold(v, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	sub := normalize(substr)
	if sub == "" {
		return true
	}
	return strings.Contains(normalize(s), sub)
}
