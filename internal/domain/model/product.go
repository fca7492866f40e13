package model

// Product is catalog reference data; this service only reads it.
type Product struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	PictureURL string  `json:"pictureUrl"`
	Price      float64 `json:"price"`
}
