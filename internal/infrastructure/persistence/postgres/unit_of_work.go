package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"

	"go.uber.org/zap"
)

// mutation is one staged write, executed inside the Complete transaction.
type mutation func(ctx context.Context, tx *sql.Tx) (int64, error)

// UnitOfWork scopes one logical request: one pinned connection, one
// lazily-built repository per entity type, one atomic commit of everything
// staged. Instances must not be shared across concurrent callers.
type UnitOfWork struct {
	db     *sql.DB
	logger *zap.Logger

	conn    *sql.Conn
	pending []mutation
	closed  bool

	orders          *Repository[model.Order]
	products        *Repository[model.Product]
	deliveryMethods *Repository[model.DeliveryMethod]
}

func NewUnitOfWork(db *sql.DB, logger *zap.Logger) *UnitOfWork {
	return &UnitOfWork{db: db, logger: logger}
}

// Factory hands out a fresh unit of work per request.
func Factory(db *sql.DB, logger *zap.Logger) repository.UnitOfWorkFactory {
	return func() repository.UnitOfWork {
		return NewUnitOfWork(db, logger)
	}
}

// Orders returns the order repository, building it on first use. Every call
// within this unit's lifetime returns the same instance.
func (u *UnitOfWork) Orders() repository.Repository[model.Order] {
	if u.orders == nil {
		u.orders = newRepository(u, orderMapper{}, u.logger)
	}
	return u.orders
}

func (u *UnitOfWork) Products() repository.Repository[model.Product] {
	if u.products == nil {
		u.products = newRepository(u, productMapper{}, u.logger)
	}
	return u.products
}

func (u *UnitOfWork) DeliveryMethods() repository.Repository[model.DeliveryMethod] {
	if u.deliveryMethods == nil {
		u.deliveryMethods = newRepository(u, deliveryMethodMapper{}, u.logger)
	}
	return u.deliveryMethods
}

// querier pins a pool connection on first use so every read and the final
// commit observe the same session.
func (u *UnitOfWork) querier(ctx context.Context) (Querier, error) {
	if u.closed {
		return nil, fmt.Errorf("unit of work is closed")
	}
	if u.conn == nil {
		conn, err := u.db.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire connection: %w", err)
		}
		u.conn = conn
	}
	return u.conn, nil
}

func (u *UnitOfWork) stage(m mutation) {
	u.pending = append(u.pending, m)
}

// Complete runs all staged mutations in a single transaction and returns
// the total number of affected rows. Zero with a nil error means nothing
// was persisted; infrastructure faults come back as errors.
func (u *UnitOfWork) Complete(ctx context.Context) (affected int64, err error) {
	if len(u.pending) == 0 {
		return 0, nil
	}
	if _, err = u.querier(ctx); err != nil {
		return 0, err
	}

	tx, err := u.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				u.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	for _, m := range u.pending {
		n, mErr := m(ctx, tx)
		if mErr != nil {
			err = fmt.Errorf("failed to apply staged mutation: %w", mErr)
			return 0, err
		}
		affected += n
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.pending = nil
	return affected, nil
}

// Close releases the pinned connection and drops anything still staged.
// Safe to call more than once.
func (u *UnitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	u.pending = nil
	if u.conn != nil {
		if err := u.conn.Close(); err != nil {
			return fmt.Errorf("failed to release connection: %w", err)
		}
		u.conn = nil
	}
	return nil
}
