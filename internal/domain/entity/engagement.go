package entity

import "time"

const (
	EngagementStatusPending    = "pending"
	EngagementStatusInProgress = "in_progress"
	EngagementStatusCompleted  = "completed"
	EngagementStatusCancelled  = "cancelled"
)

// Engagement is the tracked transaction ("business") spawned by a conversation.
// It references the conversation by id only; the two records are never nested.
type Engagement struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	RequesterID    string     `json:"requester_id" firestore:"requesterId"`
	ProviderID     string     `json:"provider_id" firestore:"providerId"`
	QuoteID        string     `json:"quote_id,omitempty" firestore:"quoteId,omitempty"`
	Amount         float64    `json:"amount" firestore:"amount"`
	Currency       string     `json:"currency" firestore:"currency"`
	Status         string     `json:"status" firestore:"status"`
	StartDate      time.Time  `json:"start_date" firestore:"startDate"`
	EndDate        *time.Time `json:"end_date,omitempty" firestore:"endDate,omitempty"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// IsTerminal reports whether no further status change is possible.
func (e *Engagement) IsTerminal() bool {
	return e.Status == EngagementStatusCompleted || e.Status == EngagementStatusCancelled
}

// HasParty reports whether userID is the requester or the provider of the engagement.
func (e *Engagement) HasParty(userID string) bool {
	return e.RequesterID == userID || e.ProviderID == userID
}
