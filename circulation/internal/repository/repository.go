package repository

import (
	"context"
	"sync"

	"github.com/Astemirdum/library-circulation/circulation/internal/errs"
	"go.uber.org/zap"
)

// Repository stores items in insertion order. It does not enforce uniqueness.
type Repository[T any] interface {
	Add(ctx context.Context, item T) error
	// Get returns the first item matching predicate or errs.ErrNotFound.
	Get(ctx context.Context, predicate func(T) bool) (T, error)
	GetAll(ctx context.Context) ([]T, error)
}

type repository[T any] struct {
	mu    sync.RWMutex
	items []T
	log   *zap.Logger
}

// NewRepository returns an in-memory Repository backed by a slice; lookups are linear.
func NewRepository[T any](name string, log *zap.Logger) *repository[T] {
	return &repository[T]{
		log: log.Named("repo").With(zap.String("entity", name)),
	}
}

func (r *repository[T]) Add(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.items = append(r.items, item)
	size := len(r.items)
	r.mu.Unlock()

	r.log.Debug("Add", zap.Int("size", size))
	return nil
}

func (r *repository[T]) Get(ctx context.Context, predicate func(T) bool) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if predicate(item) {
			return item, nil
		}
	}
	return zero, errs.ErrNotFound
}

func (r *repository[T]) GetAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]T, len(r.items))
	copy(items, r.items)
	return items, nil
}
