// Package eventbus fans lifecycle events out to in-process subscribers.
// Publishing never blocks the caller and never fails the operation that produced the event.
package eventbus

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/pkg/logger"
)

const queueSize = 256

type Bus struct {
	events     chan entity.Event
	submanager *SubManager
	publisher  *PublisherWithFailureThreshold
}

func New(writeTimeout time.Duration, writeFailureThreshold int) *Bus {
	return &Bus{
		events:     make(chan entity.Event, queueSize),
		submanager: NewSubManager(),
		publisher:  NewPublisherWithFailureThreshold(writeTimeout, writeFailureThreshold),
	}
}

func (b *Bus) Subscribe(subscriber EventWChannel) {
	b.submanager.Subscribe(subscriber)
}

func (b *Bus) Unsubscribe(subscriber EventWChannel) {
	b.submanager.Unsubscribe(subscriber)
}

// Publish enqueues e for delivery. When the queue is full the event is dropped.
func (b *Bus) Publish(ctx context.Context, e entity.Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	select {
	case b.events <- e:
	default:
		logger.Warn("Event queue full, dropping %s event", e.Type)
	}
}

// Start delivers queued events until ctx is cancelled, then closes every subscriber.
func (b *Bus) Start(ctx context.Context) error {
	defer b.submanager.UnsubscribeAll()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Event bus stopped: %v", ctx.Err())
			return nil
		case e := <-b.events:
			logger.Debug("Publishing %s event to %d subscribers", e.Type, b.submanager.Count())
			b.fanOut(ctx, e)
		}
	}
}

func (b *Bus) fanOut(ctx context.Context, e entity.Event) {
	b.submanager.OnSubscribers(func(subscriber EventWChannel) {
		go func() {
			if err := b.publisher.Publish(ctx, subscriber, e); err != nil {
				logger.Warn("Dropping slow event subscriber: %v", err)
				b.Unsubscribe(subscriber)
			}
		}()
	})
}
