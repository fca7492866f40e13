package basket

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain/model"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	redisContainer, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start redis container")

	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get connection string")
	addr := strings.TrimPrefix(connStr, "redis://")

	store := NewStore(addr, zap.NewNop())
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestStore_GetAbsentReturnsNil(t *testing.T) {
	store := setupTestStore(t)

	basket, err := store.Get(context.Background(), "no-such-basket")
	require.NoError(t, err)
	assert.Nil(t, basket)
}

func TestStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	basket := &model.Basket{
		ID: gofakeit.UUID(),
		Items: []model.BasketItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 7, Quantity: 1},
		},
		DeliveryMethodID: 3,
	}
	require.NoError(t, store.Set(ctx, basket))

	got, err := store.Get(ctx, basket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, basket, got)

	require.NoError(t, store.Delete(ctx, basket.ID))

	got, err = store.Get(ctx, basket.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_DeleteAbsentIsNoError(t *testing.T) {
	store := setupTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "already-gone"))
}
