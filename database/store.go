package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbukum/fluxkit/flux"
	"github.com/kbukum/fluxkit/store"
)

// Store is an AsyncStore over the table of model T. T must be a gorm model
// whose primary key column is keyColumn ("id" unless overridden).
type Store[T any] struct {
	db        *DB
	identity  store.Identity[T]
	resource  string
	keyColumn string
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	keyColumn string
}

// WithKeyColumn sets the primary key column used by FindByID and DeleteByID.
func WithKeyColumn(column string) StoreOption {
	return func(o *storeOptions) { o.keyColumn = column }
}

// NewStore creates a Store for model T. resource names the records in errors.
func NewStore[T any](db *DB, identity store.Identity[T], resource string, opts ...StoreOption) *Store[T] {
	o := storeOptions{keyColumn: "id"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{db: db, identity: identity, resource: resource, keyColumn: o.keyColumn}
}

// Save upserts v.
func (s *Store[T]) Save(v T) flux.Task[T] {
	return flux.NewTask(func(ctx context.Context) (T, error) {
		v := s.identity.Ensure(v, uuid.NewString)
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&v).Error
		if err != nil {
			return v, FromDatabase(err, s.resource)
		}
		return v, nil
	})
}

// FindAll streams the table in rowid order, scanning one row per value.
func (s *Store[T]) FindAll() flux.Stream[T] {
	return flux.FromIterator("database", func(ctx context.Context) (flux.Iterator[T], error) {
		tx := s.db.WithContext(ctx).Model(new(T)).Order("rowid")
		rows, err := tx.Rows()
		if err != nil {
			return nil, FromDatabase(err, s.resource)
		}
		return &rowIterator[T]{tx: tx, rows: rows, resource: s.resource}, nil
	})
}

// FindByID completes empty when no row has the id.
func (s *Store[T]) FindByID(id string) flux.Task[T] {
	return flux.NewOptionalTask(func(ctx context.Context) (T, bool, error) {
		var v T
		err := s.db.WithContext(ctx).Where(clause.Eq{Column: s.keyColumn, Value: id}).Take(&v).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return v, false, nil
		case err != nil:
			return v, false, FromDatabase(err, s.resource)
		}
		return v, true, nil
	})
}

// DeleteByID removes the row if present.
func (s *Store[T]) DeleteByID(id string) flux.Task[flux.Unit] {
	return flux.NewOptionalTask(func(ctx context.Context) (flux.Unit, bool, error) {
		err := s.db.WithContext(ctx).Where(clause.Eq{Column: s.keyColumn, Value: id}).Delete(new(T)).Error
		if err != nil {
			return flux.Unit{}, false, FromDatabase(err, s.resource)
		}
		return flux.Unit{}, false, nil
	})
}

type rowIterator[T any] struct {
	tx       *gorm.DB
	rows     *sql.Rows
	resource string
}

func (it *rowIterator[T]) Next(context.Context) (T, bool, error) {
	var v T
	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			return v, false, FromDatabase(err, it.resource)
		}
		return v, false, nil
	}
	if err := it.tx.ScanRows(it.rows, &v); err != nil {
		return v, false, FromDatabase(err, it.resource)
	}
	return v, true, nil
}

func (it *rowIterator[T]) Close() error {
	return it.rows.Close()
}

var _ store.AsyncStore[struct{}] = (*Store[struct{}])(nil)
