package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/store"
)

// Store is an AsyncStore keeping each record as a JSON field of one hash.
type Store[T any] struct {
	client   *Client
	key      string
	identity store.Identity[T]
}

// NewStore creates a Store over the hash at key.
func NewStore[T any](client *Client, key string, identity store.Identity[T]) *Store[T] {
	return &Store[T]{client: client, key: key, identity: identity}
}

func (s *Store[T]) Save(v T) flux.Task[T] {
	return flux.NewTask(func(ctx context.Context) (T, error) {
		v := s.identity.Ensure(v, uuid.NewString)
		data, err := json.Marshal(v)
		if err != nil {
			return v, errors.Internal(fmt.Errorf("redis store marshal: %w", err))
		}
		if err := s.client.HSet(ctx, s.key, s.identity.ID(v), data); err != nil {
			return v, fromRedis(err)
		}
		return v, nil
	})
}

func (s *Store[T]) FindAll() flux.Stream[T] {
	return flux.FromIterator("redis", func(ctx context.Context) (flux.Iterator[T], error) {
		it, err := s.client.HScan(ctx, s.key)
		if err != nil {
			return nil, fromRedis(err)
		}
		return &hashIterator[T]{it: it}, nil
	})
}

func (s *Store[T]) FindByID(id string) flux.Task[T] {
	return flux.NewOptionalTask(func(ctx context.Context) (T, bool, error) {
		var v T
		data, err := s.client.HGet(ctx, s.key, id)
		switch {
		case IsNotFound(err):
			return v, false, nil
		case err != nil:
			return v, false, fromRedis(err)
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return v, false, errors.Internal(fmt.Errorf("redis store unmarshal %q: %w", id, err))
		}
		return v, true, nil
	})
}

func (s *Store[T]) DeleteByID(id string) flux.Task[flux.Unit] {
	return flux.NewOptionalTask(func(ctx context.Context) (flux.Unit, bool, error) {
		if err := s.client.HDel(ctx, s.key, id); err != nil {
			return flux.Unit{}, false, fromRedis(err)
		}
		return flux.Unit{}, false, nil
	})
}

// hashIterator decodes the field/value pairs of an HSCAN.
type hashIterator[T any] struct {
	it *goredis.ScanIterator
}

func (h *hashIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var v T
	// field, then value
	if !h.it.Next(ctx) {
		return v, false, fromRedis(h.it.Err())
	}
	field := h.it.Val()
	if !h.it.Next(ctx) {
		if err := h.it.Err(); err != nil {
			return v, false, fromRedis(err)
		}
		return v, false, fmt.Errorf("redis store: field %q without value", field)
	}
	if err := json.Unmarshal([]byte(h.it.Val()), &v); err != nil {
		return v, false, errors.Internal(fmt.Errorf("redis store unmarshal %q: %w", field, err))
	}
	return v, true, nil
}

func (h *hashIterator[T]) Close() error { return nil }

func fromRedis(err error) error {
	if err == nil {
		return nil
	}
	return errors.ExternalServiceError("redis", err)
}

var _ store.AsyncStore[struct{}] = (*Store[struct{}])(nil)
