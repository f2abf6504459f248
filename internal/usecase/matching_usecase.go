package usecase

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/internal/domain/service"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
)

type MatchingUseCase struct {
	requesterRepo repository.RequesterProfileRepository
	providerRepo  repository.ProviderProfileRepository
	matchRepo     repository.MatchRepository
	search        *SearchUseCase
}

func NewMatchingUseCase(
	requesterRepo repository.RequesterProfileRepository,
	providerRepo repository.ProviderProfileRepository,
	matchRepo repository.MatchRepository,
	search *SearchUseCase,
) *MatchingUseCase {
	return &MatchingUseCase{
		requesterRepo: requesterRepo,
		providerRepo:  providerRepo,
		matchRepo:     matchRepo,
		search:        search,
	}
}

// RankedResult is one smart-match candidate with its score, breakdown and reasons.
type RankedResult struct {
	Offering *entity.Offering        `json:"offering"`
	Provider *entity.ProviderProfile `json:"provider,omitempty"`
	service.SmartScoreResult
}

func (uc *MatchingUseCase) ScoreMatch(requester *entity.RequesterProfile, provider *entity.ProviderProfile) int {
	return service.ScoreMatch(requester, provider)
}

func (uc *MatchingUseCase) MatchReasons(requester *entity.RequesterProfile, provider *entity.ProviderProfile) []string {
	return service.MatchReasons(requester, provider)
}

// resolveRequester accepts a profile id or the owning user id. A nil profile with a nil
// error means nothing could be resolved.
func (uc *MatchingUseCase) resolveRequester(ctx context.Context, requesterID string) (*entity.RequesterProfile, error) {
	profile, err := uc.requesterRepo.GetByID(ctx, requesterID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	profile, err = uc.requesterRepo.GetByUserID(ctx, requesterID)
	if err == nil {
		return profile, nil
	}
	if errors.Is(err, errors.CodeNotFound) {
		return nil, nil
	}
	return nil, err
}

// FindSmartMatches ranks services and products for the requester. Only the budget ceiling and
// location pre-filter the catalog; everything else is left to scoring.
func (uc *MatchingUseCase) FindSmartMatches(ctx context.Context, requesterID string) ([]RankedResult, error) {
	requester, err := uc.resolveRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		logger.Debug("No requester profile for %s, returning no matches", requesterID)
		return []RankedResult{}, nil
	}

	base := service.SearchFilter{
		MaxPrice: requester.Budget.Max,
		Location: requester.Location,
	}
	types := []string{entity.OfferingTypeService, entity.OfferingTypeProduct}
	found := make([][]service.OfferingResult, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, offeringType := range types {
		i, offeringType := i, offeringType
		g.Go(func() error {
			filter := base
			filter.Type = offeringType
			results, err := uc.search.SearchOfferings(gctx, filter)
			if err != nil {
				return err
			}
			found[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := []RankedResult{}
	for _, results := range found {
		for _, candidate := range results {
			scored := service.SmartScore(requester, candidate.Offering)
			if scored.Score < service.MinSmartScore {
				continue
			}
			ranked = append(ranked, RankedResult{
				Offering:         candidate.Offering,
				Provider:         candidate.Provider,
				SmartScoreResult: scored,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	logger.Info("Smart matching for requester %s returned %d candidates", requester.ID, len(ranked))
	return ranked, nil
}

// FindMatches coarse-scores every provider for the requester and persists one MatchRecord per
// provider with a positive score. Re-running refreshes score and reasons but keeps the status.
func (uc *MatchingUseCase) FindMatches(ctx context.Context, requesterID string) ([]*entity.MatchRecord, error) {
	requester, err := uc.resolveRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return []*entity.MatchRecord{}, nil
	}

	providers, err := uc.providerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := uc.matchRepo.ListByRequesterID(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	byProvider := make(map[string]*entity.MatchRecord, len(existing))
	for _, m := range existing {
		byProvider[m.ProviderID] = m
	}

	matches := []*entity.MatchRecord{}
	for _, provider := range providers {
		if provider.UserID == requester.UserID {
			continue
		}
		score := service.ScoreMatch(requester, provider)
		if score <= 0 {
			continue
		}
		reasons := service.MatchReasons(requester, provider)

		if match, ok := byProvider[provider.ID]; ok {
			match.Score = score
			match.Reasons = reasons
			if err := uc.matchRepo.Update(ctx, match); err != nil {
				return nil, err
			}
			matches = append(matches, match)
			continue
		}

		match := &entity.MatchRecord{
			RequesterID: requester.ID,
			ProviderID:  provider.ID,
			Score:       score,
			Reasons:     reasons,
			Status:      entity.MatchStatusPending,
		}
		if err := uc.matchRepo.Create(ctx, match); err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// UpdateMatchStatus records an advisory status; no transition rules apply.
func (uc *MatchingUseCase) UpdateMatchStatus(ctx context.Context, matchID, status string) (*entity.MatchRecord, error) {
	switch status {
	case entity.MatchStatusPending, entity.MatchStatusAccepted, entity.MatchStatusRejected, entity.MatchStatusCompleted:
	default:
		return nil, errors.BadRequest("Invalid match status: "+status, nil)
	}

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	match.Status = status
	if err := uc.matchRepo.Update(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}
