package entity

import "time"

const (
	ConversationStatusActive  = "active"
	ConversationStatusClosed  = "closed"
	ConversationStatusDeleted = "deleted"

	UnknownParticipant = "unknown"
	SystemSenderID     = "system"
)

type Conversation struct {
	ID            string     `json:"id" firestore:"id"`
	RequesterID   string     `json:"requester_id" firestore:"requesterId"`
	ProviderID    string     `json:"provider_id" firestore:"providerId"`
	MatchID       string     `json:"match_id,omitempty" firestore:"matchId,omitempty"`
	LastMessageID string     `json:"last_message_id,omitempty" firestore:"lastMessageId,omitempty"`
	LastMessage   string     `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time  `json:"last_message_at" firestore:"lastMessageAt"`
	Status        string     `json:"status" firestore:"status"` // active, closed, deleted
	CloseReason   string     `json:"close_reason,omitempty" firestore:"closeReason,omitempty"`
	CloseComment  string     `json:"close_comment,omitempty" firestore:"closeComment,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty" firestore:"closedAt,omitempty"`
	CreatedAt     time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID is one of the two sides of the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.RequesterID == userID || c.ProviderID == userID
}
