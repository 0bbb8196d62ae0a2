package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory keeps entities in a mutex guarded map. List returns entities ordered by id.
type Memory[T Entity] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewMemory constructs an in-memory repository seeded with the given entities.
func NewMemory[T Entity](seed ...T) *Memory[T] {
	m := &Memory[T]{items: make(map[string]T, len(seed))}
	for _, entity := range seed {
		if id := entity.EntityID(); validID(id) {
			m.items[id] = entity
		}
	}
	return m
}

var _ Repository[Entity] = (*Memory[Entity])(nil)

// List returns a snapshot of every stored entity.
func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.items[id])
	}
	return result, nil
}

// Get returns the entity stored under id.
func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	entity, ok := m.items[id]
	if !ok {
		return zero, fmt.Errorf("memory: get %s: %w", id, ErrNotFound)
	}
	return entity, nil
}

// Put inserts or replaces the entity.
func (m *Memory[T]) Put(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := entity.EntityID()
	if !validID(id) {
		return ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = entity
	return nil
}

// Delete removes the entity stored under id.
func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("memory: delete %s: %w", id, ErrNotFound)
	}
	delete(m.items, id)
	return nil
}
