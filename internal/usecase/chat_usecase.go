package usecase

import (
	"context"
	"fmt"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
	"bizmatch/pkg/utils"
)

const welcomeMessage = "Conversation started. Share what you need and the provider will get back to you with a quote."

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	engagements      *EngagementUseCase
	publisher        EventPublisher
	locks            *keyedMutex
	settings         Settings
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	engagements *EngagementUseCase,
	publisher EventPublisher,
	settings Settings,
) *ChatUseCase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		engagements:      engagements,
		publisher:        publisher,
		locks:            newKeyedMutex(),
		settings:         settings.withDefaults(),
	}
}

type QuoteInput struct {
	ServiceName string
	Description string
	Price       float64
	Currency    string
	Terms       string
}

type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
	Type           string // "text", "quote", "file"
	Quote          *QuoteInput
}

// CreateConversation returns the existing conversation when one is already open for
// the same requester and match id.
func (uc *ChatUseCase) CreateConversation(ctx context.Context, requesterID, providerID, matchID string) (*entity.Conversation, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}

	if requesterID == "" {
		return nil, errors.BadRequest("Requester is required", nil)
	}
	if providerID == requesterID {
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}
	if providerID == "" {
		providerID = entity.UnknownParticipant
	}

	return uc.createConversation(ctx, "", requesterID, providerID, matchID)
}

// createConversation runs the dedupe check and the creation under one lock. A non-empty id
// forces the new conversation's id and dedupes on it instead of the match.
func (uc *ChatUseCase) createConversation(ctx context.Context, id, requesterID, providerID, matchID string) (*entity.Conversation, error) {
	var key string
	switch {
	case id != "":
		key = "id:" + id
	case matchID != "":
		key = "match:" + requesterID + "|" + matchID
	}
	if key != "" {
		unlock := uc.locks.Lock(key)
		defer unlock()
	}

	existing, err := uc.findExisting(ctx, id, requesterID, matchID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Debug("Reusing conversation %s for requester %s", existing.ID, requesterID)
		return existing, nil
	}

	now := time.Now()
	conversation := &entity.Conversation{
		ID:            id,
		RequesterID:   requesterID,
		ProviderID:    providerID,
		MatchID:       matchID,
		Status:        entity.ConversationStatusActive,
		LastMessageAt: now,
	}
	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		// Another process won the race for the same match; hand back its conversation.
		if errors.Is(err, errors.CodeConflict) {
			if winner, findErr := uc.findExisting(ctx, id, requesterID, matchID); findErr == nil && winner != nil {
				logger.Debug("Reusing conversation %s created concurrently for requester %s", winner.ID, requesterID)
				return winner, nil
			}
		}
		return nil, err
	}
	logger.Info("Conversation %s created between %s and %s", conversation.ID, requesterID, providerID)

	welcome := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       entity.SystemSenderID,
		Content:        welcomeMessage,
		Type:           entity.MessageTypeText,
	}
	if err := uc.appendMessage(ctx, conversation, welcome); err != nil {
		// A conversation never exists without its welcome message.
		if deleteErr := uc.conversationRepo.Delete(ctx, conversation.ID); deleteErr != nil {
			logger.LogSideEffectError("roll back conversation", conversation.ID, deleteErr)
		}
		return nil, err
	}

	if uc.engagements != nil {
		_, err := uc.engagements.create(ctx, CreateEngagementInput{
			ConversationID: conversation.ID,
			RequesterID:    requesterID,
			ProviderID:     providerID,
			Currency:       uc.settings.DefaultCurrency,
		})
		if err != nil {
			logger.LogSideEffectError("auto-create engagement", conversation.ID, err)
		}
	}

	uc.publisher.Publish(ctx, entity.Event{
		Type:       entity.EventConversationCreated,
		Recipients: recipients(requesterID, providerID),
		Payload:    conversation,
	})

	return conversation, nil
}

func (uc *ChatUseCase) findExisting(ctx context.Context, id, requesterID, matchID string) (*entity.Conversation, error) {
	var (
		existing *entity.Conversation
		err      error
	)
	switch {
	case id != "":
		existing, err = uc.conversationRepo.GetByID(ctx, id)
	case matchID != "":
		existing, err = uc.conversationRepo.FindByRequesterAndMatch(ctx, requesterID, matchID)
	default:
		return nil, nil
	}

	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// SendMessage appends a message. An unknown conversation id is created on the fly with the
// sender as requester, so a message never arrives before its conversation.
func (uc *ChatUseCase) SendMessage(ctx context.Context, input SendMessageInput) (*entity.Message, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}

	if input.ConversationID == "" || input.SenderID == "" {
		return nil, errors.BadRequest("Conversation and sender are required", nil)
	}
	if input.Type == "" {
		input.Type = entity.MessageTypeText
	}

	message := &entity.Message{
		ConversationID: input.ConversationID,
		SenderID:       input.SenderID,
		Content:        input.Content,
		Type:           input.Type,
	}

	switch input.Type {
	case entity.MessageTypeText, entity.MessageTypeFile:
		if input.Content == "" {
			return nil, errors.BadRequest("Message content is required", nil)
		}
	case entity.MessageTypeQuote:
		quote, err := uc.buildQuote(input.Quote)
		if err != nil {
			return nil, err
		}
		message.Quote = quote
		if message.Content == "" {
			message.Content = fmt.Sprintf("Quote: %s (%.2f %s)", quote.ServiceName, quote.Price, quote.Currency)
		}
	default:
		return nil, errors.BadRequest("Invalid message type: "+input.Type, nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		logger.Warn("Message for unknown conversation %s, creating it for sender %s", input.ConversationID, input.SenderID)
		conversation, err = uc.createConversation(ctx, input.ConversationID, input.SenderID, entity.UnknownParticipant, "")
		if err != nil {
			return nil, err
		}
	}

	if conversation.Status != entity.ConversationStatusActive {
		return nil, errors.NotEligible("Conversation is closed")
	}
	if !conversation.HasParticipant(input.SenderID) && conversation.ProviderID != entity.UnknownParticipant {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	if err := uc.appendMessage(ctx, conversation, message); err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, entity.Event{
		Type:       entity.EventMessageCreated,
		Recipients: recipients(conversation.RequesterID, conversation.ProviderID),
		Payload:    message,
	})

	return message, nil
}

func (uc *ChatUseCase) buildQuote(input *QuoteInput) (*entity.Quote, error) {
	if input == nil {
		return nil, errors.BadRequest("Quote details are required for quote messages", nil)
	}
	if input.ServiceName == "" {
		return nil, errors.BadRequest("Quote service name is required", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Quote price cannot be negative", nil)
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.settings.DefaultCurrency
	}

	return &entity.Quote{
		ID:          utils.NewID("quote"),
		ServiceName: input.ServiceName,
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		ValidUntil:  time.Now().Add(uc.settings.QuoteValidity),
		Terms:       input.Terms,
		Status:      entity.QuoteStatusPending,
	}, nil
}

// appendMessage stores message and moves the conversation's last-message pointer to it.
func (uc *ChatUseCase) appendMessage(ctx context.Context, conversation *entity.Conversation, message *entity.Message) error {
	message.ConversationID = conversation.ID
	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return err
	}

	conversation.LastMessageID = message.ID
	conversation.LastMessage = message.Content
	conversation.LastMessageAt = message.CreatedAt
	return uc.conversationRepo.Update(ctx, conversation)
}

func (uc *ChatUseCase) GetConversation(ctx context.Context, conversationID string) (*entity.Conversation, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.conversationRepo.GetByID(ctx, conversationID)
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.conversationRepo.GetMessages(ctx, conversationID)
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}
	return uc.conversationRepo.ListByUserID(ctx, userID)
}

// RespondToQuote looks the quote up across every conversation. An unknown quote id is a
// no-op and returns (nil, nil). The engagement is never touched.
func (uc *ChatUseCase) RespondToQuote(ctx context.Context, quoteID, status string) (*entity.Message, error) {
	return uc.RespondToQuoteInConversation(ctx, "", quoteID, status)
}

// RespondToQuoteInConversation is RespondToQuote limited to one conversation.
func (uc *ChatUseCase) RespondToQuoteInConversation(ctx context.Context, conversationID, quoteID, status string) (*entity.Message, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}

	if status != entity.QuoteStatusAccepted && status != entity.QuoteStatusRejected {
		return nil, errors.BadRequest("Quote response must be accepted or rejected", nil)
	}

	message, err := uc.conversationRepo.FindMessageByQuoteID(ctx, conversationID, quoteID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			logger.Debug("Quote %s not found, nothing to update", quoteID)
			return nil, nil
		}
		return nil, err
	}

	quote := message.Quote
	if quote.Status != entity.QuoteStatusPending {
		return nil, errors.InvalidTransition("Quote", quote.Status, status)
	}

	now := time.Now()
	if status == entity.QuoteStatusAccepted && now.After(quote.ValidUntil) {
		return nil, errors.NotEligible("Quote has expired")
	}

	quote.Status = status
	quote.RespondedAt = &now
	if err := uc.conversationRepo.UpdateMessage(ctx, message); err != nil {
		return nil, err
	}

	logger.Info("Quote %s in conversation %s %s", quote.ID, message.ConversationID, status)

	event := entity.Event{Type: entity.EventQuoteUpdated, Payload: message}
	if conversation, err := uc.conversationRepo.GetByID(ctx, message.ConversationID); err == nil {
		event.Recipients = recipients(conversation.RequesterID, conversation.ProviderID)
	}
	uc.publisher.Publish(ctx, event)

	return message, nil
}

// RespondToQuoteAs answers a quote on behalf of actorID. Only the party that did not send
// the quote may answer it.
func (uc *ChatUseCase) RespondToQuoteAs(ctx context.Context, actorID, conversationID, quoteID, status string) (*entity.Message, error) {
	message, err := uc.conversationRepo.FindMessageByQuoteID(ctx, conversationID, quoteID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return uc.RespondToQuoteInConversation(ctx, conversationID, quoteID, status)
		}
		return nil, err
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, message.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(actorID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}
	if message.SenderID == actorID {
		return nil, errors.Forbidden("You cannot respond to your own quote", nil)
	}

	return uc.RespondToQuoteInConversation(ctx, message.ConversationID, quoteID, status)
}

// CloseConversationAs closes the conversation on behalf of actorID, who must be a participant.
func (uc *ChatUseCase) CloseConversationAs(ctx context.Context, actorID, conversationID, reason, comment string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(actorID) {
		return nil, errors.Forbidden("Only conversation participants can close it", nil)
	}
	return uc.CloseConversation(ctx, conversationID, reason, comment)
}

// CloseConversation is one-way. As a side effect the conversation's engagement is completed;
// a missing or failing engagement never fails the close.
func (uc *ChatUseCase) CloseConversation(ctx context.Context, conversationID, reason, comment string) (*entity.Conversation, error) {
	if err := uc.settings.wait(ctx); err != nil {
		return nil, err
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Status != entity.ConversationStatusActive {
		return nil, errors.InvalidTransition("Conversation", conversation.Status, entity.ConversationStatusClosed)
	}

	now := time.Now()
	conversation.Status = entity.ConversationStatusClosed
	conversation.CloseReason = reason
	conversation.CloseComment = comment
	conversation.ClosedAt = &now

	if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
		return nil, err
	}
	logger.Info("Conversation %s closed: %s", conversation.ID, reason)

	if uc.engagements != nil {
		if _, err := uc.engagements.completeForConversation(ctx, conversation.ID, now); err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				logger.Debug("No engagement to complete for conversation %s", conversation.ID)
			} else {
				logger.LogSideEffectError("complete engagement", conversation.ID, err)
			}
		}
	}

	uc.publisher.Publish(ctx, entity.Event{
		Type:       entity.EventConversationClosed,
		Recipients: recipients(conversation.RequesterID, conversation.ProviderID),
		Payload:    conversation,
	})

	return conversation, nil
}
