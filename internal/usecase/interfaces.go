package usecase

import (
	"context"

	"bizmatch/internal/domain/entity"
)

// EventPublisher broadcasts lifecycle events. Implementations must not block the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, entity.Event) {}
