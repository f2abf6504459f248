package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memory "bizmatch/internal/adapter/repository"
	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
)

func TestUpdateEngagementStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []string
		next    string
		errCode string
	}{
		{name: "pending to in progress", next: entity.EngagementStatusInProgress},
		{name: "pending to cancelled", next: entity.EngagementStatusCancelled},
		{name: "pending cannot jump to completed", next: entity.EngagementStatusCompleted, errCode: "INVALID_TRANSITION"},
		{name: "in progress to completed", path: []string{entity.EngagementStatusInProgress}, next: entity.EngagementStatusCompleted},
		{name: "in progress to cancelled", path: []string{entity.EngagementStatusInProgress}, next: entity.EngagementStatusCancelled},
		{name: "in progress back to pending", path: []string{entity.EngagementStatusInProgress}, next: entity.EngagementStatusPending, errCode: "INVALID_TRANSITION"},
		{name: "completed is terminal", path: []string{entity.EngagementStatusInProgress, entity.EngagementStatusCompleted}, next: entity.EngagementStatusCancelled, errCode: "INVALID_TRANSITION"},
		{name: "cancelled is terminal", path: []string{entity.EngagementStatusCancelled}, next: entity.EngagementStatusInProgress, errCode: "INVALID_TRANSITION"},
		{name: "unknown status", next: "archived", errCode: "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			engagement, err := f.engagements.CreateEngagement(ctx, CreateEngagementInput{RequesterID: "req-1", ProviderID: "prov-1"})
			require.NoError(t, err)
			for _, step := range tt.path {
				_, err := f.engagements.UpdateEngagementStatus(ctx, engagement.ID, step, nil)
				require.NoError(t, err)
			}

			updated, err := f.engagements.UpdateEngagementStatus(ctx, engagement.ID, tt.next, nil)
			if tt.errCode != "" {
				assert.True(t, errors.Is(err, tt.errCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, updated.Status)
		})
	}
}

func TestUpdateEngagementStatusKeepsCallerEndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	engagement, err := f.engagements.CreateEngagement(ctx, CreateEngagementInput{RequesterID: "req-1", ProviderID: "prov-1", Amount: 300})
	require.NoError(t, err)
	_, err = f.engagements.UpdateEngagementStatus(ctx, engagement.ID, entity.EngagementStatusInProgress, nil)
	require.NoError(t, err)

	withoutDate, err := f.engagements.UpdateEngagementStatus(ctx, engagement.ID, entity.EngagementStatusCompleted, nil)
	require.NoError(t, err)
	assert.Nil(t, withoutDate.EndDate, "completion date is never computed")

	other, err := f.engagements.CreateEngagement(ctx, CreateEngagementInput{RequesterID: "req-1", ProviderID: "prov-1"})
	require.NoError(t, err)
	_, err = f.engagements.UpdateEngagementStatus(ctx, other.ID, entity.EngagementStatusInProgress, nil)
	require.NoError(t, err)

	end := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	completed, err := f.engagements.UpdateEngagementStatus(ctx, other.ID, entity.EngagementStatusCompleted, &end)
	require.NoError(t, err)
	require.NotNil(t, completed.EndDate)
	assert.True(t, end.Equal(*completed.EndDate))
	assert.Equal(t, 6, f.publisher.count(entity.EventEngagementUpdated))
}

func TestCreateEngagement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	engagement, err := f.engagements.CreateEngagement(ctx, CreateEngagementInput{
		ConversationID: "conversation_1",
		RequesterID:    "req-1",
		ProviderID:     "prov-1",
		Amount:         450,
		Currency:       "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EngagementStatusPending, engagement.Status)
	assert.Equal(t, "USD", engagement.Currency)
	assert.False(t, engagement.StartDate.IsZero())

	_, err = f.engagements.CreateEngagement(ctx, CreateEngagementInput{ConversationID: "conversation_1", RequesterID: "req-1", ProviderID: "prov-1"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = f.engagements.CreateEngagement(ctx, CreateEngagementInput{RequesterID: "req-1"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.engagements.CreateEngagement(ctx, CreateEngagementInput{RequesterID: "req-1", ProviderID: "prov-1", Amount: -1})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	list, err := f.engagements.ListEngagements(ctx, "prov-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCompleteForConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	conversation, err := f.chat.CreateConversation(ctx, "req-1", "prov-1", "match-1")
	require.NoError(t, err)

	end := time.Now()
	completed, err := f.engagements.CompleteForConversation(ctx, conversation.ID, end)
	require.NoError(t, err)
	assert.Equal(t, entity.EngagementStatusCompleted, completed.Status, "pending jumps straight to completed")
	require.NotNil(t, completed.EndDate)

	again, err := f.engagements.CompleteForConversation(ctx, conversation.ID, end.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, end.Equal(*again.EndDate), "completing twice keeps the first end date")

	_, err = f.engagements.CompleteForConversation(ctx, "conversation_missing", end)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCompleteForConversationRefusesCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	conversation, err := f.chat.CreateConversation(ctx, "req-1", "prov-1", "match-1")
	require.NoError(t, err)
	engagement, err := f.engagements.GetByConversation(ctx, conversation.ID)
	require.NoError(t, err)
	_, err = f.engagements.UpdateEngagementStatus(ctx, engagement.ID, entity.EngagementStatusCancelled, nil)
	require.NoError(t, err)

	_, err = f.engagements.CompleteForConversation(ctx, conversation.ID, time.Now())
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))

	closed, err := f.chat.CloseConversation(ctx, conversation.ID, "cancelled deal", "")
	require.NoError(t, err, "closing never fails because of its engagement")
	assert.Equal(t, entity.ConversationStatusClosed, closed.Status)
}

// slowEngagementRepository widens the gap between the conversation lookup and the write.
type slowEngagementRepository struct {
	repository.EngagementRepository
}

func (r slowEngagementRepository) GetByConversationID(ctx context.Context, conversationID string) (*entity.Engagement, error) {
	time.Sleep(5 * time.Millisecond)
	return r.EngagementRepository.GetByConversationID(ctx, conversationID)
}

func TestCreateEngagementConcurrentCallsForOneConversation(t *testing.T) {
	f := newFixture(t, withEngagementRepo(slowEngagementRepository{memory.NewMemoryEngagementRepository()}))
	ctx := context.Background()

	const callers = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.engagements.CreateEngagement(ctx, CreateEngagementInput{
				ConversationID: "conversation_race",
				RequesterID:    "req-1",
				ProviderID:     "prov-1",
			})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, errors.CodeConflict))
	}
	assert.Equal(t, 1, succeeded)

	list, err := f.engagements.ListEngagements(ctx, "req-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateEngagementStatusAsRequiresParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	engagement, err := f.engagements.CreateEngagement(ctx, CreateEngagementInput{RequesterID: "req-1", ProviderID: "prov-1"})
	require.NoError(t, err)

	_, err = f.engagements.UpdateEngagementStatusAs(ctx, "stranger", engagement.ID, entity.EngagementStatusCancelled, nil)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	stored, err := f.engagements.GetEngagement(ctx, engagement.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EngagementStatusPending, stored.Status)

	updated, err := f.engagements.UpdateEngagementStatusAs(ctx, "prov-1", engagement.ID, entity.EngagementStatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.EngagementStatusInProgress, updated.Status)

	_, err = f.engagements.UpdateEngagementStatusAs(ctx, "req-1", "engagement_missing", entity.EngagementStatusCancelled, nil)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
