package model

import (
	"fmt"
	"time"
)

// OrderStatus is persisted as its string value. Unknown values coming back
// from the store are a deserialization error, not a default.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusPaymentReceived OrderStatus = "PaymentReceived"
	OrderStatusPaymentFailed   OrderStatus = "PaymentFailed"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaymentReceived, OrderStatusPaymentFailed:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
}

func (s OrderStatus) String() string {
	return string(s)
}

// Address is an owned value of Order: it has no identity of its own and is
// stored inline with the order row.
type Address struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode" validate:"required"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// ProductItemOrdered snapshots the product at order time. Later changes to
// the catalog must not affect already-placed orders.
type ProductItemOrdered struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	PictureURL  string `json:"pictureUrl"`
}

type OrderItem struct {
	ID          int64              `json:"id"`
	ItemOrdered ProductItemOrdered `json:"itemOrdered"`
	Price       float64            `json:"price"`
	Quantity    int                `json:"quantity"`
}

type Order struct {
	ID               int64       `json:"id"`
	BuyerEmail       string      `json:"buyerEmail"`
	ShipToAddress    Address     `json:"shipToAddress"`
	Items            []OrderItem `json:"items"`
	DeliveryMethodID int64       `json:"deliveryMethodId"`
	DeliveryMethod   *DeliveryMethod `json:"deliveryMethod,omitempty"`
	Subtotal         float64     `json:"subtotal"`
	Status           OrderStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// NewOrder enforces the construction invariants: at least one item and a
// non-empty shipping address. Status starts at Pending.
func NewOrder(buyerEmail string, shipTo Address, items []OrderItem, deliveryMethodID int64, subtotal float64) (*Order, error) {
	if buyerEmail == "" {
		return nil, fmt.Errorf("%w: buyer email is empty", ErrInvalidOrderData)
	}
	if shipTo.IsZero() {
		return nil, fmt.Errorf("%w: shipping address is empty", ErrInvalidOrderData)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrInvalidOrderData)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d has non-positive quantity", ErrInvalidOrderData, item.ItemOrdered.ProductID)
		}
	}
	return &Order{
		BuyerEmail:       buyerEmail,
		ShipToAddress:    shipTo,
		Items:            items,
		DeliveryMethodID: deliveryMethodID,
		Subtotal:         subtotal,
		Status:           OrderStatusPending,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Subtotal of a set of items, independent of resolution order.
func SubtotalOf(items []OrderItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
