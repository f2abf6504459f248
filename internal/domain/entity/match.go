package entity

import "time"

const (
	MatchStatusPending   = "pending"
	MatchStatusAccepted  = "accepted"
	MatchStatusRejected  = "rejected"
	MatchStatusCompleted = "completed"
)

// MatchRecord pairs a requester with a provider. Status is advisory only.
type MatchRecord struct {
	ID          string    `json:"id" firestore:"id"`
	RequesterID string    `json:"requester_id" firestore:"requesterId"`
	ProviderID  string    `json:"provider_id" firestore:"providerId"`
	Score       int       `json:"score" firestore:"score"`
	Reasons     []string  `json:"reasons" firestore:"reasons"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
