package usecase

import (
	"context"
	"math"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
)

type RatingUseCase struct {
	ratingRepo     repository.RatingRepository
	engagementRepo repository.EngagementRepository
	providerRepo   repository.ProviderProfileRepository
	publisher      EventPublisher
	settings       Settings
	locks          *keyedMutex
}

func NewRatingUseCase(
	ratingRepo repository.RatingRepository,
	engagementRepo repository.EngagementRepository,
	providerRepo repository.ProviderProfileRepository,
	publisher EventPublisher,
	settings Settings,
) *RatingUseCase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &RatingUseCase{
		ratingRepo:     ratingRepo,
		engagementRepo: engagementRepo,
		providerRepo:   providerRepo,
		publisher:      publisher,
		settings:       settings.withDefaults(),
		locks:          newKeyedMutex(),
	}
}

type CreateRatingInput struct {
	FromUserID   string
	ToUserID     string // defaults to the other party of the engagement
	EngagementID string
	Score        int
	Comment      string
}

func (uc *RatingUseCase) CreateRating(ctx context.Context, input CreateRatingInput) (*entity.Rating, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}

	if input.Score < 1 || input.Score > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	engagement, err := uc.engagementRepo.GetByID(ctx, input.EngagementID)
	if err != nil {
		return nil, err
	}
	rating, err := uc.insertRating(ctx, input, engagement)
	if err != nil {
		return nil, err
	}
	logger.Info("Rating %s created for engagement %s", rating.ID, engagement.ID)

	if err := uc.refreshProviderRating(ctx, rating.ToUserID); err != nil {
		logger.LogSideEffectError("refresh provider rating", rating.ToUserID, err)
	}

	uc.publisher.Publish(ctx, entity.Event{
		Type:       entity.EventRatingCreated,
		Recipients: recipients(rating.ToUserID),
		Payload:    rating,
	})

	return rating, nil
}

// insertRating holds the rater's lock for the engagement from the eligibility check to the
// write, so concurrent submissions by one user store a single rating.
func (uc *RatingUseCase) insertRating(ctx context.Context, input CreateRatingInput, engagement *entity.Engagement) (*entity.Rating, error) {
	unlock := uc.locks.Lock("rating:" + input.FromUserID + "|" + engagement.ID)
	defer unlock()

	if err := uc.checkEligible(ctx, input.FromUserID, engagement); err != nil {
		return nil, err
	}

	counterpart := engagement.ProviderID
	if input.FromUserID == engagement.ProviderID {
		counterpart = engagement.RequesterID
	}
	if input.ToUserID == "" {
		input.ToUserID = counterpart
	}
	if input.ToUserID != counterpart {
		return nil, errors.BadRequest("You can only rate the other party of the engagement", nil)
	}

	rating := &entity.Rating{
		FromUserID:   input.FromUserID,
		ToUserID:     input.ToUserID,
		EngagementID: engagement.ID,
		Score:        input.Score,
		Comment:      input.Comment,
	}
	if err := uc.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// CanRate reports whether userID may still rate the engagement.
func (uc *RatingUseCase) CanRate(ctx context.Context, userID, engagementID string) (bool, error) {
	engagement, err := uc.engagementRepo.GetByID(ctx, engagementID)
	if err != nil {
		return false, err
	}

	err = uc.checkEligible(ctx, userID, engagement)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errors.CodeNotEligible) || errors.Is(err, errors.CodeForbidden) || errors.Is(err, errors.CodeConflict) {
		return false, nil
	}
	return false, err
}

func (uc *RatingUseCase) checkEligible(ctx context.Context, userID string, engagement *entity.Engagement) error {
	if engagement.Status != entity.EngagementStatusCompleted {
		return errors.NotEligible("Engagement must be completed before it can be rated")
	}
	if !engagement.HasParty(userID) {
		return errors.Forbidden("Only engagement participants can rate it", nil)
	}

	_, err := uc.ratingRepo.FindByFromUserAndEngagement(ctx, userID, engagement.ID)
	if err == nil {
		return errors.Conflict("You have already rated this engagement")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return err
	}
	return nil
}

func (uc *RatingUseCase) ListRatingsForEngagement(ctx context.Context, engagementID string) ([]*entity.Rating, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.ratingRepo.ListByEngagementID(ctx, engagementID)
}

func (uc *RatingUseCase) ListRatingsForUser(ctx context.Context, userID string) ([]*entity.Rating, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.ratingRepo.ListByToUserID(ctx, userID)
}

// refreshProviderRating recomputes the stored aggregate of the provider owned by userID.
// Users without a provider profile are skipped.
func (uc *RatingUseCase) refreshProviderRating(ctx context.Context, userID string) error {
	provider, err := uc.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil
		}
		return err
	}

	ratings, err := uc.ratingRepo.ListByToUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		return nil
	}

	total := 0
	for _, r := range ratings {
		total += r.Score
	}
	provider.Rating = math.Round(float64(total)/float64(len(ratings))*10) / 10
	provider.ReviewCount = len(ratings)

	return uc.providerRepo.Update(ctx, provider)
}
