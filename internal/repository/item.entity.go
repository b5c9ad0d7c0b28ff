package repository

import (
	"github.com/dukani/credit-ledger/internal/model"
)

type ItemEntity struct {
	ID            int64   `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	TransactionID int64   `db:"transaction_id" gorm:"column:transaction_id;not null;index"`
	ProductID     int64   `db:"product_id"     gorm:"column:product_id;not null;index"`
	Quantity      int     `db:"quantity"       gorm:"column:quantity;not null"`
	UnitPrice     float64 `db:"unit_price"     gorm:"column:unit_price;not null"`
	TotalPrice    float64 `db:"total_price"    gorm:"column:total_price;not null"`
}

func (ItemEntity) TableName() string {
	return "credit_items"
}

func toItemEntity(m *model.CreditItem) *ItemEntity {
	if m == nil {
		return nil
	}
	return &ItemEntity{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalPrice:    m.TotalPrice,
	}
}

func toItemModel(e *ItemEntity) *model.CreditItem {
	if e == nil {
		return nil
	}
	return &model.CreditItem{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		ProductID:     e.ProductID,
		Quantity:      e.Quantity,
		UnitPrice:     e.UnitPrice,
		TotalPrice:    e.TotalPrice,
	}
}

func toItemModels(entities []*ItemEntity) []*model.CreditItem {
	if entities == nil {
		return nil
	}
	models := make([]*model.CreditItem, len(entities))
	for i, e := range entities {
		models[i] = toItemModel(e)
	}
	return models
}
