package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/lumen/internal/domain"
)

// CorrelationStore mirrors repository.CorrelationRepo without importing it,
// so repository tests can use this package.
type CorrelationStore interface {
	Upsert(ctx context.Context, c *domain.Correlation) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Correlation, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// FailingCorrelationRepo wraps a CorrelationStore and fails the first
// FailFirst Upsert calls with Err. Upserts counts every attempt.
type FailingCorrelationRepo struct {
	CorrelationStore
	FailFirst int32
	Err       error
	Upserts   atomic.Int32
}

func (r *FailingCorrelationRepo) Upsert(ctx context.Context, c *domain.Correlation) error {
	n := r.Upserts.Add(1)
	if n <= r.FailFirst {
		return r.Err
	}
	if r.CorrelationStore == nil {
		return nil
	}
	return r.CorrelationStore.Upsert(ctx, c)
}
