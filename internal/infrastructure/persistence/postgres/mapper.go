package postgres

import (
	"context"
	"database/sql"
)

// Querier is the read surface shared by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RowScanner covers both *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Mapper binds one entity type to its table. Insert, Update and Delete run
// inside the unit-of-work transaction and report affected rows; they are
// free to touch child tables (order items ride along with their order).
type Mapper[T any] interface {
	Table() string
	Columns() []string
	Scan(row RowScanner) (*T, error)
	Insert(ctx context.Context, tx *sql.Tx, entity *T) (int64, error)
	Update(ctx context.Context, tx *sql.Tx, entity *T) (int64, error)
	Delete(ctx context.Context, tx *sql.Tx, entity *T) (int64, error)
	// LoadRelation eagerly loads the named relation for all entities in one
	// batched query. Unknown relation names are an error.
	LoadRelation(ctx context.Context, q Querier, relation string, entities []*T) error
}
