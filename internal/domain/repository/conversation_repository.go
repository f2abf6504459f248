package repository

import (
	"context"

	"bizmatch/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindByRequesterAndMatch returns NOT_FOUND when no conversation exists for the pair.
	FindByRequesterAndMatch(ctx context.Context, requesterID, matchID string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id string) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	// GetMessages returns the conversation's messages ordered by creation time.
	GetMessages(ctx context.Context, conversationID string) ([]*entity.Message, error)
	// FindMessageByQuoteID scans all conversations, or only conversationID when it is non-empty.
	FindMessageByQuoteID(ctx context.Context, conversationID, quoteID string) (*entity.Message, error)
	UpdateMessage(ctx context.Context, message *entity.Message) error
}
