// Package store defines the asynchronous persistence contract used by the
// services and an in-memory implementation of it.
//
// Every operation returns a cold Task or Stream: nothing touches the
// backend until the result is run, and each run performs the operation
// again. Drivers for sqlite (database), redis and mongo live in their own
// packages.
package store

import (
	"github.com/kbukum/fluxkit/flux"
)

// AsyncStore persists records of type T keyed by a string ID.
type AsyncStore[T any] interface {
	// Save inserts or replaces v and emits the stored record. A record
	// without an ID is assigned a new one.
	Save(v T) flux.Task[T]
	// FindAll emits every stored record.
	FindAll() flux.Stream[T]
	// FindByID emits the record with the given ID or completes empty.
	FindByID(id string) flux.Task[T]
	// DeleteByID removes the record if present and completes empty.
	DeleteByID(id string) flux.Task[flux.Unit]
}

// Identity reads and assigns the ID of a record.
type Identity[T any] struct {
	ID     func(T) string
	WithID func(T, string) T
}

// Ensure returns v with a fresh ID when it has none.
func (i Identity[T]) Ensure(v T, newID func() string) T {
	if i.ID(v) != "" {
		return v
	}
	return i.WithID(v, newID())
}
