package model

// DeliveryMethod is read-only reference data seeded by migration.
type DeliveryMethod struct {
	ID           int64   `json:"id"`
	ShortName    string  `json:"shortName"`
	DeliveryTime string  `json:"deliveryTime"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
}
