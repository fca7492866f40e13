package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/specification"

	"go.uber.org/zap"
)

// Repository is the generic data-access implementation for one entity type.
// Reads go straight to the unit's connection; writes are staged on the unit
// and become durable only when it completes.
type Repository[T any] struct {
	uow    *UnitOfWork
	mapper Mapper[T]
	logger *zap.Logger
}

func newRepository[T any](uow *UnitOfWork, mapper Mapper[T], logger *zap.Logger) *Repository[T] {
	return &Repository[T]{uow: uow, mapper: mapper, logger: logger}
}

// GetByID returns nil without an error when no row matches.
func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	q, err := r.uow.querier(ctx)
	if err != nil {
		return nil, err
	}
	query, args := buildQuery(r.mapper.Table(), r.mapper.Columns(),
		specification.New[T]().Where("id", id))
	entity, err := r.mapper.Scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by id: %w", r.mapper.Table(), err)
	}
	return entity, nil
}

func (r *Repository[T]) ListAll(ctx context.Context) ([]*T, error) {
	return r.List(ctx, specification.New[T]())
}

func (r *Repository[T]) List(ctx context.Context, spec *specification.Query[T]) ([]*T, error) {
	q, err := r.uow.querier(ctx)
	if err != nil {
		return nil, err
	}
	return evaluate(ctx, q, r.mapper, spec)
}

// First returns the first entity matching the specification, or nil when
// nothing matches.
func (r *Repository[T]) First(ctx context.Context, spec *specification.Query[T]) (*T, error) {
	results, err := r.List(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *Repository[T]) Add(entity *T) {
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) (int64, error) {
		return r.mapper.Insert(ctx, tx, entity)
	})
}

func (r *Repository[T]) Update(entity *T) {
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) (int64, error) {
		return r.mapper.Update(ctx, tx, entity)
	})
}

func (r *Repository[T]) Delete(entity *T) {
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) (int64, error) {
		return r.mapper.Delete(ctx, tx, entity)
	})
}
