package model

import "time"

// OrderCreatedEvent is published after an order commit. BasketDeleted is
// false when post-commit basket cleanup failed and the basket needs manual
// attention.
type OrderCreatedEvent struct {
	OrderID       int64     `json:"orderId"`
	BuyerEmail    string    `json:"buyerEmail"`
	BasketID      string    `json:"basketId"`
	Subtotal      float64   `json:"subtotal"`
	BasketDeleted bool      `json:"basketDeleted"`
	CreatedAt     time.Time `json:"createdAt"`
}
