package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	memory "bizmatch/internal/adapter/repository"
	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func (p *recordingPublisher) total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// failingEngagementRepository refuses every write.
type failingEngagementRepository struct {
	repository.EngagementRepository
}

func (failingEngagementRepository) Create(context.Context, *entity.Engagement) error {
	return errors.Internal("engagement store unavailable", nil)
}

type fixture struct {
	conversationRepo repository.ConversationRepository
	engagementRepo   repository.EngagementRepository
	ratingRepo       repository.RatingRepository
	requesterRepo    repository.RequesterProfileRepository
	providerRepo     repository.ProviderProfileRepository
	offeringRepo     repository.OfferingRepository
	matchRepo        repository.MatchRepository
	publisher        *recordingPublisher

	chat        *ChatUseCase
	engagements *EngagementUseCase
	ratings     *RatingUseCase
	profiles    *ProfileUseCase
	search      *SearchUseCase
	matching    *MatchingUseCase
}

type fixtureOption func(*fixture, *Settings)

func withEngagementRepo(repo repository.EngagementRepository) fixtureOption {
	return func(f *fixture, _ *Settings) { f.engagementRepo = repo }
}

func withRatingRepo(repo repository.RatingRepository) fixtureOption {
	return func(f *fixture, _ *Settings) { f.ratingRepo = repo }
}

func withConversationRepo(repo repository.ConversationRepository) fixtureOption {
	return func(f *fixture, _ *Settings) { f.conversationRepo = repo }
}

func withSettings(s Settings) fixtureOption {
	return func(_ *fixture, settings *Settings) { *settings = s }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	f := &fixture{
		conversationRepo: memory.NewMemoryConversationRepository(),
		engagementRepo:   memory.NewMemoryEngagementRepository(),
		ratingRepo:       memory.NewMemoryRatingRepository(),
		requesterRepo:    memory.NewMemoryRequesterProfileRepository(),
		providerRepo:     memory.NewMemoryProviderProfileRepository(),
		offeringRepo:     memory.NewMemoryOfferingRepository(),
		matchRepo:        memory.NewMemoryMatchRepository(),
		publisher:        &recordingPublisher{},
	}
	settings := Settings{}
	for _, opt := range opts {
		opt(f, &settings)
	}

	f.engagements = NewEngagementUseCase(f.engagementRepo, f.publisher, settings)
	f.chat = NewChatUseCase(f.conversationRepo, f.engagements, f.publisher, settings)
	f.ratings = NewRatingUseCase(f.ratingRepo, f.engagementRepo, f.providerRepo, f.publisher, settings)
	f.profiles = NewProfileUseCase(f.requesterRepo, f.providerRepo, f.offeringRepo, settings)
	f.search = NewSearchUseCase(f.offeringRepo, f.providerRepo)
	f.matching = NewMatchingUseCase(f.requesterRepo, f.providerRepo, f.matchRepo, f.search)
	return f
}

// completedEngagement creates a conversation between requester and provider and completes its engagement.
func (f *fixture) completedEngagement(t *testing.T, requesterID, providerID string) *entity.Engagement {
	t.Helper()
	ctx := context.Background()

	conversation, err := f.chat.CreateConversation(ctx, requesterID, providerID, "match-"+requesterID+"-"+providerID)
	require.NoError(t, err)
	_, err = f.chat.CloseConversation(ctx, conversation.ID, "done", "")
	require.NoError(t, err)

	engagement, err := f.engagements.GetByConversation(ctx, conversation.ID)
	require.NoError(t, err)
	require.Equal(t, entity.EngagementStatusCompleted, engagement.Status)
	return engagement
}
