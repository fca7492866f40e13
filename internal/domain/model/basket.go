package model

// Basket lives in the external basket store; this service reads it to build
// an order and deletes it after a confirmed commit.
type Basket struct {
	ID               string       `json:"id"`
	Items            []BasketItem `json:"items"`
	DeliveryMethodID int64        `json:"deliveryMethodId,omitempty"`
}

type BasketItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
