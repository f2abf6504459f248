package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
	matchKeysCollection     = "conversation_match_keys"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) messages(conversationID string) *firestore.CollectionRef {
	return r.client.Collection(conversationsCollection).Doc(conversationID).Collection(messagesCollection)
}

func (r *firestoreConversationRepository) matchKey(conversation *entity.Conversation) *firestore.DocumentRef {
	return r.client.Collection(matchKeysCollection).Doc(utils.KeyID("match", conversation.RequesterID, conversation.MatchID))
}

// Create fails with CONFLICT when the id is taken or the requester already holds a
// conversation for the match. The match key document is created in the same transaction.
func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = utils.NewID("conversation")
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	if conversation.LastMessageAt.IsZero() {
		conversation.LastMessageAt = now
	}

	ref := r.client.Collection(conversationsCollection).Doc(conversation.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if conversation.MatchID != "" {
			if err := tx.Create(r.matchKey(conversation), map[string]interface{}{"conversationId": conversation.ID}); err != nil {
				return err
			}
		}
		return tx.Create(ref, conversation)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			if conversation.MatchID != "" {
				if _, getErr := r.matchKey(conversation).Get(ctx); getErr == nil {
					return errors.Conflict(matchTaken)
				}
			}
			return errors.Conflict("Conversation " + conversation.ID + " already exists")
		}
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection(conversationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) FindByRequesterAndMatch(ctx context.Context, requesterID, matchID string) (*entity.Conversation, error) {
	query := r.client.Collection(conversationsCollection).
		Where("requesterId", "==", requesterID).
		Where("matchId", "==", matchID).
		Limit(1)

	return firstDocument[entity.Conversation](query.Documents(ctx), "Conversation")
}

// ListByUserID merges both participant sides, newest activity first.
func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	seen := make(map[string]bool)
	var conversations []*entity.Conversation

	for _, field := range []string{"requesterId", "providerId"} {
		query := r.client.Collection(conversationsCollection).Where(field, "==", userID)
		rows, err := decodeDocuments[entity.Conversation](query.Documents(ctx), "conversations")
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if seen[row.ID] {
				continue
			}
			seen[row.ID] = true
			conversations = append(conversations, row)
		}
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	return conversations, nil
}

func (r *firestoreConversationRepository) Update(ctx context.Context, conversation *entity.Conversation) error {
	conversation.UpdatedAt = time.Now()

	_, err := r.client.Collection(conversationsCollection).Doc(conversation.ID).Set(ctx, conversation)
	if err != nil {
		return errors.Internal("Failed to update conversation", err)
	}

	return nil
}

// Delete removes the conversation, its message subcollection and its match key.
func (r *firestoreConversationRepository) Delete(ctx context.Context, id string) error {
	conversation, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	refs, err := r.messages(id).DocumentRefs(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list conversation messages", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, ref := range refs {
		if _, err := bw.Delete(ref); err != nil {
			bw.End()
			return errors.Internal("Failed to delete conversation messages", err)
		}
	}
	bw.End()

	if _, err := r.client.Collection(conversationsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete conversation", err)
	}

	if conversation.MatchID != "" {
		if _, err := r.matchKey(conversation).Delete(ctx); err != nil {
			return errors.Internal("Failed to release conversation match key", err)
		}
	}

	return nil
}

func (r *firestoreConversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = utils.NewID("message")
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.messages(message.ConversationID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	query := r.messages(conversationID).OrderBy("createdAt", firestore.Asc)
	return decodeDocuments[entity.Message](query.Documents(ctx), "messages")
}

// FindMessageByQuoteID uses a collection-group query when no conversation is given.
func (r *firestoreConversationRepository) FindMessageByQuoteID(ctx context.Context, conversationID, quoteID string) (*entity.Message, error) {
	var query firestore.Query
	if conversationID != "" {
		query = r.messages(conversationID).Where("quote.id", "==", quoteID).Limit(1)
	} else {
		query = r.client.CollectionGroup(messagesCollection).Where("quote.id", "==", quoteID).Limit(1)
	}

	return firstDocument[entity.Message](query.Documents(ctx), "Quote")
}

func (r *firestoreConversationRepository) UpdateMessage(ctx context.Context, message *entity.Message) error {
	_, err := r.messages(message.ConversationID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to update message", err)
	}
	return nil
}
