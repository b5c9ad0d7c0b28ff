package model

import (
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

type CustomerCreateRequest struct {
	Name  string
	Phone string
}

func (p CustomerCreateRequest) Validate() error {
	if p.Name == "" {
		return invalid("name is required")
	}
	if p.Phone == "" {
		return invalid("phone is required")
	}
	return nil
}
