package repository

import (
	"context"
	"sort"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type memoryConversationRepository struct {
	conversations *memoryTable[entity.Conversation]
	messages      *memoryTable[entity.Message]
}

func NewMemoryConversationRepository() repository.ConversationRepository {
	return &memoryConversationRepository{
		conversations: newMemoryTable(func(c *entity.Conversation) *entity.Conversation {
			out := *c
			if c.ClosedAt != nil {
				closedAt := *c.ClosedAt
				out.ClosedAt = &closedAt
			}
			return &out
		}),
		messages: newMemoryTable(cloneMessage),
	}
}

func cloneMessage(m *entity.Message) *entity.Message {
	out := *m
	if m.Quote != nil {
		quote := *m.Quote
		if m.Quote.RespondedAt != nil {
			respondedAt := *m.Quote.RespondedAt
			quote.RespondedAt = &respondedAt
		}
		out.Quote = &quote
	}
	return &out
}

func (r *memoryConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = utils.NewID("conversation")
	}
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	if conversation.LastMessageAt.IsZero() {
		conversation.LastMessageAt = now
	}
	if conversation.MatchID == "" {
		return r.conversations.insert(conversation.ID, conversation)
	}
	return r.conversations.insertUnique(conversation.ID, conversation, func(existing *entity.Conversation) bool {
		return existing.RequesterID == conversation.RequesterID && existing.MatchID == conversation.MatchID
	}, matchTaken)
}

func (r *memoryConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := r.conversations.get(id)
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *memoryConversationRepository) FindByRequesterAndMatch(ctx context.Context, requesterID, matchID string) (*entity.Conversation, error) {
	conversation, ok := r.conversations.first(func(c *entity.Conversation) bool {
		return c.RequesterID == requesterID && c.MatchID == matchID
	})
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *memoryConversationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	conversations := r.conversations.filter(func(c *entity.Conversation) bool {
		return c.HasParticipant(userID)
	})
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})
	return conversations, nil
}

func (r *memoryConversationRepository) Update(ctx context.Context, conversation *entity.Conversation) error {
	conversation.UpdatedAt = time.Now()
	if !r.conversations.replace(conversation.ID, conversation) {
		return errors.NotFound("Conversation", nil)
	}
	return nil
}

func (r *memoryConversationRepository) Delete(ctx context.Context, id string) error {
	r.conversations.remove(id)
	for _, message := range r.messages.filter(func(m *entity.Message) bool { return m.ConversationID == id }) {
		r.messages.remove(message.ID)
	}
	return nil
}

func (r *memoryConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = utils.NewID("message")
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	return r.messages.insert(message.ID, message)
}

func (r *memoryConversationRepository) GetMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	messages := r.messages.filter(func(m *entity.Message) bool { return m.ConversationID == conversationID })
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *memoryConversationRepository) FindMessageByQuoteID(ctx context.Context, conversationID, quoteID string) (*entity.Message, error) {
	message, ok := r.messages.first(func(m *entity.Message) bool {
		if conversationID != "" && m.ConversationID != conversationID {
			return false
		}
		return m.Quote != nil && m.Quote.ID == quoteID
	})
	if !ok {
		return nil, errors.NotFound("Quote", nil)
	}
	return message, nil
}

func (r *memoryConversationRepository) UpdateMessage(ctx context.Context, message *entity.Message) error {
	if !r.messages.replace(message.ID, message) {
		return errors.NotFound("Message", nil)
	}
	return nil
}
