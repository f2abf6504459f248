package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bizmatch/internal/domain/entity"
)

var ErrWriteFailure = fmt.Errorf("write failure threshold exceeded")

// PublisherWithFailureThreshold writes to one subscriber with a timeout and reports
// ErrWriteFailure once that subscriber has timed out writeFailureThreshold times in a row.
type PublisherWithFailureThreshold struct {
	writeTimeout          time.Duration
	writeFailureThreshold int
	failureCount          map[EventWChannel]int
	failureMu             sync.Mutex
}

func NewPublisherWithFailureThreshold(writeTimeout time.Duration, writeFailureThreshold int) *PublisherWithFailureThreshold {
	if writeFailureThreshold < 1 {
		writeFailureThreshold = 1
	}
	return &PublisherWithFailureThreshold{
		writeTimeout:          writeTimeout,
		writeFailureThreshold: writeFailureThreshold,
		failureCount:          make(map[EventWChannel]int),
	}
}

func (p *PublisherWithFailureThreshold) Publish(ctx context.Context, subscriber EventWChannel, e entity.Event) (err error) {
	defer func() {
		// The subscriber may have been closed by a concurrent unsubscribe.
		if r := recover(); r != nil {
			err = ErrWriteFailure
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	select {
	case subscriber <- e:
		p.failureMu.Lock()
		delete(p.failureCount, subscriber)
		p.failureMu.Unlock()
		return nil
	case <-ctx.Done():
		p.failureMu.Lock()
		count := p.failureCount[subscriber] + 1
		p.failureCount[subscriber] = count
		if count >= p.writeFailureThreshold {
			delete(p.failureCount, subscriber)
		}
		p.failureMu.Unlock()

		if count >= p.writeFailureThreshold {
			return ErrWriteFailure
		}
		return nil
	}
}
