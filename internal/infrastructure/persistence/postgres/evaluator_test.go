package postgres

import (
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/specification"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery_NoSpec(t *testing.T) {
	t.Parallel()

	query, args := buildQuery("products", []string{"id", "name"}, specification.New[model.Product]())

	assert.Equal(t, "SELECT id, name FROM products", query)
	assert.Empty(t, args)
}

func TestBuildQuery_Conditions(t *testing.T) {
	t.Parallel()

	spec := specification.New[model.Order]().
		Where("buyer_email", "jane@example.com").
		Where("status", "Pending")
	query, args := buildQuery("orders", []string{"id"}, spec)

	assert.Equal(t, "SELECT id FROM orders WHERE buyer_email = $1 AND status = $2", query)
	assert.Equal(t, []any{"jane@example.com", "Pending"}, args)
}

func TestBuildQuery_Ordering(t *testing.T) {
	t.Parallel()

	spec := specification.New[model.Order]().OrderByDescending("created_at")
	query, _ := buildQuery("orders", []string{"id"}, spec)
	assert.Equal(t, "SELECT id FROM orders ORDER BY created_at DESC", query)

	spec = specification.New[model.Order]().OrderBy("created_at")
	query, _ = buildQuery("orders", []string{"id"}, spec)
	assert.Equal(t, "SELECT id FROM orders ORDER BY created_at ASC", query)
}

func TestBuildQuery_PagingAfterOrdering(t *testing.T) {
	t.Parallel()

	spec := specification.New[model.Order]().
		Where("buyer_email", "jane@example.com").
		OrderBy("id").
		Paginate(20, 10)
	query, args := buildQuery("orders", []string{"id"}, spec)

	assert.Equal(t, "SELECT id FROM orders WHERE buyer_email = $1 ORDER BY id ASC LIMIT $2 OFFSET $3", query)
	assert.Equal(t, []any{"jane@example.com", 10, 20}, args)
}

func TestBuildQuery_PagingWithoutFilter(t *testing.T) {
	t.Parallel()

	spec := specification.New[model.Product]().OrderBy("id").Paginate(0, 3)
	query, args := buildQuery("products", []string{"id", "name"}, spec)

	assert.Equal(t, "SELECT id, name FROM products ORDER BY id ASC LIMIT $1 OFFSET $2", query)
	assert.Equal(t, []any{3, 0}, args)
}
