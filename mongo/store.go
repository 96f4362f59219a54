package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/store"
)

// Store is an AsyncStore over a collection. T's ID must map to the _id
// field.
type Store[T any] struct {
	coll      *mongo.Collection
	identity  store.Identity[T]
	batchSize int32
}

// NewStore creates a Store over coll.
func NewStore[T any](coll *mongo.Collection, identity store.Identity[T]) *Store[T] {
	return &Store[T]{coll: coll, identity: identity}
}

// WithBatchSize sets the cursor batch size used by FindAll.
func (s *Store[T]) WithBatchSize(n int32) *Store[T] {
	s.batchSize = n
	return s
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (s *Store[T]) Save(v T) flux.Task[T] {
	return flux.NewTask(func(ctx context.Context) (T, error) {
		v := s.identity.Ensure(v, uuid.NewString)
		_, err := s.coll.ReplaceOne(ctx, byID(s.identity.ID(v)), v, options.Replace().SetUpsert(true))
		if err != nil {
			return v, fromMongo(err)
		}
		return v, nil
	})
}

func (s *Store[T]) FindAll() flux.Stream[T] {
	return flux.FromIterator("mongo", func(ctx context.Context) (flux.Iterator[T], error) {
		opts := options.Find()
		if s.batchSize > 0 {
			opts.SetBatchSize(s.batchSize)
		}
		cur, err := s.coll.Find(ctx, bson.D{}, opts)
		if err != nil {
			return nil, fromMongo(err)
		}
		return &cursorIterator[T]{cur: cur}, nil
	})
}

func (s *Store[T]) FindByID(id string) flux.Task[T] {
	return flux.NewOptionalTask(func(ctx context.Context) (T, bool, error) {
		var v T
		err := s.coll.FindOne(ctx, byID(id)).Decode(&v)
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return v, false, nil
		case err != nil:
			return v, false, fromMongo(err)
		}
		return v, true, nil
	})
}

func (s *Store[T]) DeleteByID(id string) flux.Task[flux.Unit] {
	return flux.NewOptionalTask(func(ctx context.Context) (flux.Unit, bool, error) {
		if _, err := s.coll.DeleteOne(ctx, byID(id)); err != nil {
			return flux.Unit{}, false, fromMongo(err)
		}
		return flux.Unit{}, false, nil
	})
}

type cursorIterator[T any] struct {
	cur *mongo.Cursor
}

func (c *cursorIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var v T
	if !c.cur.Next(ctx) {
		return v, false, fromMongo(c.cur.Err())
	}
	if err := c.cur.Decode(&v); err != nil {
		return v, false, fromMongo(err)
	}
	return v, true, nil
}

// Close uses a fresh context so the server cursor is released even when
// the run was cancelled.
func (c *cursorIterator[T]) Close() error {
	return c.cur.Close(context.Background())
}

func fromMongo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case mongo.IsDuplicateKeyError(err):
		return apperrors.AlreadyExists("document").WithCause(err)
	case mongo.IsTimeout(err):
		return apperrors.Timeout("mongo").WithCause(err)
	case mongo.IsNetworkError(err):
		return apperrors.ConnectionFailed("mongo").WithCause(err)
	}
	return apperrors.ExternalServiceError("mongo", err)
}

var _ store.AsyncStore[struct{}] = (*Store[struct{}])(nil)
