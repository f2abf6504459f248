package usecase

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
)

// engagementTransitions lists the status changes a caller may request directly.
// Closing a conversation is the only path that skips straight to completed.
var engagementTransitions = map[string][]string{
	entity.EngagementStatusPending:    {entity.EngagementStatusInProgress, entity.EngagementStatusCancelled},
	entity.EngagementStatusInProgress: {entity.EngagementStatusCompleted, entity.EngagementStatusCancelled},
}

type EngagementUseCase struct {
	engagementRepo repository.EngagementRepository
	publisher      EventPublisher
	settings       Settings
	locks          *keyedMutex
}

func NewEngagementUseCase(
	engagementRepo repository.EngagementRepository,
	publisher EventPublisher,
	settings Settings,
) *EngagementUseCase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &EngagementUseCase{
		engagementRepo: engagementRepo,
		publisher:      publisher,
		settings:       settings.withDefaults(),
		locks:          newKeyedMutex(),
	}
}

type CreateEngagementInput struct {
	ConversationID string
	RequesterID    string
	ProviderID     string
	QuoteID        string
	Amount         float64
	Currency       string
	StartDate      time.Time
}

func (uc *EngagementUseCase) CreateEngagement(ctx context.Context, input CreateEngagementInput) (*entity.Engagement, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.create(ctx, input)
}

func (uc *EngagementUseCase) create(ctx context.Context, input CreateEngagementInput) (*entity.Engagement, error) {
	if input.RequesterID == "" || input.ProviderID == "" {
		return nil, errors.BadRequest("Engagement requires both a requester and a provider", nil)
	}
	if input.Amount < 0 {
		return nil, errors.BadRequest("Engagement amount cannot be negative", nil)
	}

	// One engagement per conversation: the lookup and the write happen under the conversation's lock.
	if input.ConversationID != "" {
		unlock := uc.locks.Lock("conversation:" + input.ConversationID)
		defer unlock()

		existing, err := uc.engagementRepo.GetByConversationID(ctx, input.ConversationID)
		if err == nil && existing != nil {
			return nil, errors.Conflict("An engagement already exists for this conversation")
		}
		if err != nil && !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.settings.DefaultCurrency
	}
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}

	engagement := &entity.Engagement{
		ConversationID: input.ConversationID,
		RequesterID:    input.RequesterID,
		ProviderID:     input.ProviderID,
		QuoteID:        input.QuoteID,
		Amount:         input.Amount,
		Currency:       currency,
		Status:         entity.EngagementStatusPending,
		StartDate:      startDate,
	}

	if err := uc.engagementRepo.Create(ctx, engagement); err != nil {
		return nil, err
	}

	logger.Info("Engagement %s created for conversation %s", engagement.ID, engagement.ConversationID)
	uc.notify(ctx, engagement)
	return engagement, nil
}

func (uc *EngagementUseCase) GetEngagement(ctx context.Context, id string) (*entity.Engagement, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.engagementRepo.GetByID(ctx, id)
}

func (uc *EngagementUseCase) GetByConversation(ctx context.Context, conversationID string) (*entity.Engagement, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.engagementRepo.GetByConversationID(ctx, conversationID)
}

func (uc *EngagementUseCase) ListEngagements(ctx context.Context, userID string) ([]*entity.Engagement, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.engagementRepo.ListByUserID(ctx, userID)
}

// UpdateEngagementStatus applies a guarded transition. endDate is stored as given; it is never computed here.
func (uc *EngagementUseCase) UpdateEngagementStatus(ctx context.Context, id, status string, endDate *time.Time) (*entity.Engagement, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}

	if !isEngagementStatus(status) {
		return nil, errors.BadRequest("Invalid engagement status: "+status, nil)
	}

	engagement, err := uc.engagementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canTransition(engagement.Status, status) {
		return nil, errors.InvalidTransition("Engagement", engagement.Status, status)
	}

	engagement.Status = status
	if endDate != nil {
		end := *endDate
		engagement.EndDate = &end
	}

	if err := uc.engagementRepo.Update(ctx, engagement); err != nil {
		return nil, err
	}

	logger.Info("Engagement %s moved to %s", engagement.ID, status)
	uc.notify(ctx, engagement)
	return engagement, nil
}

// UpdateEngagementStatusAs is UpdateEngagementStatus on behalf of actorID, who must be a party.
func (uc *EngagementUseCase) UpdateEngagementStatusAs(ctx context.Context, actorID, id, status string, endDate *time.Time) (*entity.Engagement, error) {
	engagement, err := uc.engagementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !engagement.HasParty(actorID) {
		return nil, errors.Forbidden("Only engagement participants can change its status", nil)
	}
	return uc.UpdateEngagementStatus(ctx, id, status, endDate)
}

// CompleteForConversation marks the conversation's engagement completed from any non-terminal state.
func (uc *EngagementUseCase) CompleteForConversation(ctx context.Context, conversationID string, endDate time.Time) (*entity.Engagement, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.completeForConversation(ctx, conversationID, endDate)
}

func (uc *EngagementUseCase) completeForConversation(ctx context.Context, conversationID string, endDate time.Time) (*entity.Engagement, error) {
	engagement, err := uc.engagementRepo.GetByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	switch engagement.Status {
	case entity.EngagementStatusCompleted:
		return engagement, nil
	case entity.EngagementStatusCancelled:
		return nil, errors.InvalidTransition("Engagement", engagement.Status, entity.EngagementStatusCompleted)
	}

	engagement.Status = entity.EngagementStatusCompleted
	engagement.EndDate = &endDate

	if err := uc.engagementRepo.Update(ctx, engagement); err != nil {
		return nil, err
	}

	logger.Info("Engagement %s completed with conversation %s", engagement.ID, conversationID)
	uc.notify(ctx, engagement)
	return engagement, nil
}

func (uc *EngagementUseCase) notify(ctx context.Context, engagement *entity.Engagement) {
	uc.publisher.Publish(ctx, entity.Event{
		Type:       entity.EventEngagementUpdated,
		Recipients: recipients(engagement.RequesterID, engagement.ProviderID),
		Payload:    engagement,
	})
}

func isEngagementStatus(status string) bool {
	switch status {
	case entity.EngagementStatusPending, entity.EngagementStatusInProgress,
		entity.EngagementStatusCompleted, entity.EngagementStatusCancelled:
		return true
	}
	return false
}

func canTransition(from, to string) bool {
	for _, allowed := range engagementTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// recipients drops placeholder participants.
func recipients(userIDs ...string) []string {
	out := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" || id == entity.UnknownParticipant || id == entity.SystemSenderID {
			continue
		}
		out = append(out, id)
	}
	return out
}
