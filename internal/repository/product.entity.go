package repository

import (
	"time"

	"github.com/dukani/credit-ledger/internal/model"
)

type ProductEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	Price     float64   `db:"price"      gorm:"column:price;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (ProductEntity) TableName() string {
	return "products"
}

func toProductEntity(m *model.Product) *ProductEntity {
	if m == nil {
		return nil
	}
	return &ProductEntity{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
	}
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{
		ID:        e.ID,
		Name:      e.Name,
		Price:     e.Price,
		CreatedAt: e.CreatedAt,
	}
}

func toProductModels(entities []*ProductEntity) []*model.Product {
	if entities == nil {
		return nil
	}
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models
}
