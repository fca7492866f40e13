package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() Address {
	return Address{
		FirstName: "Jane",
		LastName:  "Doe",
		Street:    "456 Street",
		City:      "Berlin",
		ZipCode:   "654321",
	}
}

func testItems() []OrderItem {
	return []OrderItem{
		{
			ItemOrdered: ProductItemOrdered{ProductID: 5, ProductName: "Mascaras", PictureURL: "http://img/5.png"},
			Price:       10.00,
			Quantity:    2,
		},
		{
			ItemOrdered: ProductItemOrdered{ProductID: 7, ProductName: "Boots", PictureURL: "http://img/7.png"},
			Price:       49.90,
			Quantity:    1,
		},
	}
}

func TestNewOrder(t *testing.T) {
	t.Parallel()

	items := testItems()
	order, err := NewOrder("jane@example.com", testAddress(), items, 1, SubtotalOf(items))
	require.NoError(t, err)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, "jane@example.com", order.BuyerEmail)
	assert.Len(t, order.Items, 2)
	assert.InDelta(t, 69.90, order.Subtotal, 1e-9)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestNewOrder_Invariants(t *testing.T) {
	t.Parallel()

	_, err := NewOrder("", testAddress(), testItems(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidOrderData)

	_, err = NewOrder("jane@example.com", Address{}, testItems(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidOrderData)

	_, err = NewOrder("jane@example.com", testAddress(), nil, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidOrderData)

	items := testItems()
	items[0].Quantity = 0
	_, err = NewOrder("jane@example.com", testAddress(), items, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidOrderData)
}

func TestSubtotalOf_IndependentOfItemOrder(t *testing.T) {
	t.Parallel()

	items := testItems()
	expected := SubtotalOf(items)

	for range 10 {
		shuffled := make([]OrderItem, len(items))
		copy(shuffled, items)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, expected, SubtotalOf(shuffled))
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"Pending", "PaymentReceived", "PaymentFailed"} {
		status, err := ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParseOrderStatus("Shipped")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = ParseOrderStatus("")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = ParseOrderStatus("pending")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}
