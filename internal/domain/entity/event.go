package entity

import "time"

const (
	EventConversationCreated = "conversation_created"
	EventConversationClosed  = "conversation_closed"
	EventMessageCreated      = "message_created"
	EventQuoteUpdated        = "quote_updated"
	EventEngagementUpdated   = "engagement_updated"
	EventRatingCreated       = "rating_created"
)

// Event is a lifecycle notification. Delivery is best effort; consumers re-fetch on a miss.
type Event struct {
	Type       string      `json:"type"`
	Recipients []string    `json:"recipients,omitempty"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}
