package postgres

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/specification"
)

// buildQuery renders a specification as a SELECT. No filter means no WHERE,
// no ordering means store order, no paging means the full set. LIMIT/OFFSET
// is emitted after ORDER BY so paging always applies to the ordered rows.
func buildQuery[T any](table string, columns []string, spec *specification.Query[T]) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(table)

	var args []any
	if conds := spec.Conditions(); len(conds) > 0 {
		b.WriteString(" WHERE ")
		for i, cond := range conds {
			if i > 0 {
				b.WriteString(" AND ")
			}
			args = append(args, cond.Value)
			fmt.Fprintf(&b, "%s = $%d", cond.Column, len(args))
		}
	}

	if column, descending, ok := spec.Ordering(); ok {
		b.WriteString(" ORDER BY ")
		b.WriteString(column)
		if descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}

	if skip, take, ok := spec.Paging(); ok {
		args = append(args, take)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
		args = append(args, skip)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}

	return b.String(), args
}

// evaluate executes a specification: filter, order and page via SQL, then
// resolve each requested include through the mapper before returning.
func evaluate[T any](ctx context.Context, q Querier, m Mapper[T], spec *specification.Query[T]) ([]*T, error) {
	query, args := buildQuery(m.Table(), m.Columns(), spec)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", m.Table(), err)
	}
	defer rows.Close()

	var results []*T
	for rows.Next() {
		entity, err := m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", m.Table(), err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during %s rows iteration: %w", m.Table(), err)
	}

	if len(results) == 0 {
		return results, nil
	}
	for _, relation := range spec.Includes() {
		if err := m.LoadRelation(ctx, q, relation, results); err != nil {
			return nil, fmt.Errorf("failed to load relation %s: %w", relation, err)
		}
	}
	return results, nil
}
