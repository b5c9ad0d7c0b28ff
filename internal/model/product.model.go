package model

import (
	"time"
)

type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (Product) TableName() string { return "products" }

type ProductCreateRequest struct {
	Name  string
	Price float64
}

func (p ProductCreateRequest) Validate() error {
	if p.Name == "" {
		return invalid("name is required")
	}
	if p.Price <= 0 {
		return invalid("price must be positive")
	}
	return nil
}
