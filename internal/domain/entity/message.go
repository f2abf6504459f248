package entity

import "time"

const (
	MessageTypeText  = "text"
	MessageTypeQuote = "quote"
	MessageTypeFile  = "file"

	QuoteStatusPending  = "pending"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

// Message is append-only; the embedded quote status is the only field ever rewritten.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Content        string    `json:"content" firestore:"content"`
	Type           string    `json:"type" firestore:"type"` // text, quote, file
	Quote          *Quote    `json:"quote,omitempty" firestore:"quote,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

type Quote struct {
	ID          string     `json:"id" firestore:"id"`
	ServiceName string     `json:"service_name" firestore:"serviceName"`
	Description string     `json:"description" firestore:"description"`
	Price       float64    `json:"price" firestore:"price"`
	Currency    string     `json:"currency" firestore:"currency"`
	ValidUntil  time.Time  `json:"valid_until" firestore:"validUntil"`
	Terms       string     `json:"terms" firestore:"terms"`
	Status      string     `json:"status" firestore:"status"` // pending, accepted, rejected
	RespondedAt *time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
}
