package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/specification"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports.go -package=mocks

// Repository is the generic data-access contract for one entity type.
// Lookups report absence as a nil result, not an error. Add, Update and
// Delete only stage the mutation; nothing is durable until the owning unit
// of work completes.
type Repository[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	ListAll(ctx context.Context) ([]*T, error)
	List(ctx context.Context, spec *specification.Query[T]) ([]*T, error)
	First(ctx context.Context, spec *specification.Query[T]) (*T, error)
	Add(entity *T)
	Update(entity *T)
	Delete(entity *T)
}

// UnitOfWork scopes one logical transaction. Each accessor returns the same
// repository instance for the lifetime of the unit, so mutations staged
// from different call sites land in one commit. Complete reports the number
// of rows affected; zero with a nil error means nothing was persisted.
type UnitOfWork interface {
	Orders() Repository[model.Order]
	Products() Repository[model.Product]
	DeliveryMethods() Repository[model.DeliveryMethod]
	Complete(ctx context.Context) (int64, error)
	Close() error
}

// UnitOfWorkFactory hands out a fresh unit of work per logical request.
// Units must never be shared across concurrent callers.
type UnitOfWorkFactory func() UnitOfWork

// BasketStore is the external basket collaborator. Get returns nil when the
// basket does not exist.
type BasketStore interface {
	Get(ctx context.Context, basketID string) (*model.Basket, error)
	Delete(ctx context.Context, basketID string) error
}

// ResponseCache stores serialized response payloads. Get returns nil on a
// miss; expired entries behave as misses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// EventPublisher notifies downstream consumers about committed orders.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event model.OrderCreatedEvent) error
}
