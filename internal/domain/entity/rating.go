package entity

import "time"

// Rating is a 1-5 review one party leaves about the other after an engagement completes.
type Rating struct {
	ID           string    `json:"id" firestore:"id"`
	FromUserID   string    `json:"from_user_id" firestore:"fromUserId"`
	ToUserID     string    `json:"to_user_id" firestore:"toUserId"`
	EngagementID string    `json:"engagement_id" firestore:"engagementId"`
	Score        int       `json:"score" firestore:"score"`
	Comment      string    `json:"comment" firestore:"comment"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
