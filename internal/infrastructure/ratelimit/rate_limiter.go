package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionSendMessage        = "send_message"
	ActionCreateConversation = "create_conversation"
	ActionSearch             = "search"
)

// idleTTL is how long an unused bucket survives Cleanup.
const idleTTL = time.Hour

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	perMinute int
	buckets   map[string]*bucket
	mutex     sync.Mutex
}

// NewRateLimiter creates a limiter whose default action allows perMinute calls per user.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{
		perMinute: perMinute,
		buckets:   make(map[string]*bucket),
	}
}

func (rl *RateLimiter) limitFor(action string) (rate.Limit, int) {
	switch action {
	case ActionSendMessage:
		// 10 messages per minute
		return rate.Every(6 * time.Second), 10
	case ActionCreateConversation:
		// 5 conversations per hour
		return rate.Every(12 * time.Minute), 5
	default:
		return rate.Every(time.Minute / time.Duration(rl.perMinute)), rl.perMinute
	}
}

// Allow consumes a token for userID and action. When refused it returns the wait until the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action
	now := time.Now()

	rl.mutex.Lock()
	b, exists := rl.buckets[key]
	if !exists {
		limit, burst := rl.limitFor(action)
		b = &bucket{limiter: rate.NewLimiter(limit, burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	rl.mutex.Unlock()

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// GetStatus returns the tokens currently available for a user action.
func (rl *RateLimiter) GetStatus(userID, action string) (tokens int, maxTokens int) {
	rl.mutex.Lock()
	b, exists := rl.buckets[userID+":"+action]
	rl.mutex.Unlock()

	if !exists {
		return 0, 0
	}
	return int(b.limiter.Tokens()), b.limiter.Burst()
}

// Cleanup removes buckets that have not been used recently.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every interval until stop is closed.
func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}
