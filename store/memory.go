package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/fluxkit/flux"
)

// Memory is an AsyncStore kept in process memory. FindAll emits records in
// insertion order.
type Memory[T any] struct {
	identity Identity[T]

	mu      sync.RWMutex
	records map[string]T
	order   []string
}

// NewMemory creates an empty in-memory store.
func NewMemory[T any](identity Identity[T]) *Memory[T] {
	return &Memory[T]{identity: identity, records: make(map[string]T)}
}

func (m *Memory[T]) Save(v T) flux.Task[T] {
	return flux.NewTask(func(context.Context) (T, error) {
		v := m.identity.Ensure(v, uuid.NewString)
		id := m.identity.ID(v)

		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.records[id]; !ok {
			m.order = append(m.order, id)
		}
		m.records[id] = v
		return v, nil
	})
}

func (m *Memory[T]) FindAll() flux.Stream[T] {
	return flux.Defer(func() flux.Stream[T] {
		m.mu.RLock()
		defer m.mu.RUnlock()
		snapshot := make([]T, 0, len(m.order))
		for _, id := range m.order {
			snapshot = append(snapshot, m.records[id])
		}
		return flux.FromSlice(snapshot)
	})
}

func (m *Memory[T]) FindByID(id string) flux.Task[T] {
	return flux.NewOptionalTask(func(context.Context) (T, bool, error) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		v, ok := m.records[id]
		return v, ok, nil
	})
}

func (m *Memory[T]) DeleteByID(id string) flux.Task[flux.Unit] {
	return flux.NewOptionalTask(func(context.Context) (flux.Unit, bool, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.records[id]; ok {
			delete(m.records, id)
			m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
		}
		return flux.Unit{}, false, nil
	})
}

var _ AsyncStore[struct{}] = (*Memory[struct{}])(nil)
