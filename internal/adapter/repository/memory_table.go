package repository

import (
	"sync"

	"bizmatch/pkg/errors"
)

// Uniqueness violations shared by the memory and Firestore stores.
const (
	alreadyRated = "You have already rated this engagement"
	matchTaken   = "A conversation already exists for this match"
)

// memoryTable is one flat, insertion-ordered collection of records keyed by id.
// Records are cloned on the way in and out so callers never share memory with the store.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order []string
	clone func(*T) *T
}

func newMemoryTable[T any](clone func(*T) *T) *memoryTable[T] {
	return &memoryTable[T]{
		rows:  make(map[string]*T),
		clone: clone,
	}
}

func (t *memoryTable[T]) insert(id string, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return errors.Conflict("Record " + id + " already exists")
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

// insertUnique is insert that also fails when an existing row clashes with row, checked under
// the same lock so two writers cannot both pass.
func (t *memoryTable[T]) insertUnique(id string, row *T, clash func(existing *T) bool, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return errors.Conflict("Record " + id + " already exists")
	}
	for _, existing := range t.rows {
		if clash(existing) {
			return errors.Conflict(message)
		}
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

func (t *memoryTable[T]) get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.clone(row), true
}

func (t *memoryTable[T]) replace(id string, row *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = t.clone(row)
	return true
}

func (t *memoryTable[T]) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// filter returns clones of the rows accepted by keep, in insertion order.
func (t *memoryTable[T]) filter(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := []*T{}
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// first returns a clone of the first row accepted by keep.
func (t *memoryTable[T]) first(keep func(*T) bool) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if row := t.rows[id]; keep(row) {
			return t.clone(row), true
		}
	}
	return nil, false
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
