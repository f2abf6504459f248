package eventbus

import (
	"sync"

	"bizmatch/internal/domain/entity"
)

// EventWChannel is the write side of a subscriber's event stream.
type EventWChannel chan<- entity.Event

type SubManager struct {
	subscribers    map[EventWChannel]struct{}
	subscriptionMu sync.RWMutex
}

func NewSubManager() *SubManager {
	return &SubManager{
		subscribers: make(map[EventWChannel]struct{}),
	}
}

func (m *SubManager) Subscribe(subscriber EventWChannel) {
	m.subscriptionMu.Lock()
	defer m.subscriptionMu.Unlock()

	if _, ok := m.subscribers[subscriber]; !ok {
		m.subscribers[subscriber] = struct{}{}
	}
}

// Unsubscribe drops and closes the channel. Unknown channels are ignored.
func (m *SubManager) Unsubscribe(subscriber EventWChannel) {
	m.subscriptionMu.Lock()
	defer m.subscriptionMu.Unlock()

	if _, ok := m.subscribers[subscriber]; !ok {
		return
	}
	delete(m.subscribers, subscriber)
	close(subscriber)
}

func (m *SubManager) UnsubscribeAll() {
	for _, subscriber := range m.snapshot() {
		m.Unsubscribe(subscriber)
	}
}

func (m *SubManager) Count() int {
	m.subscriptionMu.RLock()
	defer m.subscriptionMu.RUnlock()
	return len(m.subscribers)
}

// OnSubscribers runs do over a snapshot, so do may unsubscribe safely.
func (m *SubManager) OnSubscribers(do func(EventWChannel)) {
	for _, subscriber := range m.snapshot() {
		do(subscriber)
	}
}

func (m *SubManager) snapshot() []EventWChannel {
	m.subscriptionMu.RLock()
	defer m.subscriptionMu.RUnlock()

	subs := make([]EventWChannel, 0, len(m.subscribers))
	for subscriber := range m.subscribers {
		subs = append(subs, subscriber)
	}
	return subs
}
