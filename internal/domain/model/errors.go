package model

import "errors"

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrBasketNotFound         = errors.New("basket not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrDeliveryMethodNotFound = errors.New("delivery method not found")
	ErrNothingCommitted       = errors.New("no rows affected by commit")
	ErrInvalidOrderStatus     = errors.New("invalid order status encoding")
	ErrInvalidOrderData       = errors.New("invalid order data")
)
