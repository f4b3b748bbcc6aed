package repository

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "diamond-exchange/repository"

// StartSpan opens a tracing span for a unit of work. Exported so other
// UnitOfWork implementations report spans the same way.
func StartSpan(ctx context.Context, op string, tier ConsistencyTier) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "uow."+op,
		trace.WithAttributes(
			attribute.String("uow.operation", op),
			attribute.String("uow.tier", string(tier)),
		),
	)
}

// EndSpan records err on span and closes it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// MemoryUnitOfWork serializes units against a MemoryRepo and restores a
// snapshot when a unit fails. Views wait for in-flight units so they never
// observe uncommitted writes.
type MemoryUnitOfWork struct {
	txMu sync.RWMutex
	repo *MemoryRepo
}

// NewMemoryUnitOfWork returns the transactional tier over repo
func NewMemoryUnitOfWork(repo *MemoryRepo) *MemoryUnitOfWork {
	return &MemoryUnitOfWork{repo: repo}
}

func (u *MemoryUnitOfWork) Do(ctx context.Context, op string, fn func(ctx context.Context, s Store) error) (err error) {
	ctx, span := StartSpan(ctx, op, TierTransactional)
	defer func() { EndSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return err
	}

	u.txMu.Lock()
	defer u.txMu.Unlock()

	snap := u.repo.snapshot()
	defer func() {
		if p := recover(); p != nil {
			u.repo.restore(snap)
			panic(p)
		}
	}()

	if err = fn(ctx, u.repo); err != nil {
		u.repo.restore(snap)
		return err
	}
	return nil
}

func (u *MemoryUnitOfWork) View(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.txMu.RLock()
	defer u.txMu.RUnlock()
	return fn(ctx, u.repo)
}

func (u *MemoryUnitOfWork) Tier() ConsistencyTier {
	return TierTransactional
}

// before orders records by creation time, breaking ties by identifier
func before(a, b time.Time, idA, idB string) bool {
	if a.Equal(b) {
		return idA < idB
	}
	return a.Before(b)
}
