package repository

import (
	"github.com/dukani/credit-ledger/internal/model"
)

type PaymentEntity struct {
	ID            int64   `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	TransactionID int64   `db:"transaction_id" gorm:"column:transaction_id;not null;index"`
	Amount        float64 `db:"amount"         gorm:"column:amount;not null;default:0"`
	Method        string  `db:"method"         gorm:"column:method;not null;default:Cash"`
	Date          string  `db:"date"           gorm:"column:date;not null;default:''"`
}

func (PaymentEntity) TableName() string {
	return "payments"
}

func toPaymentEntity(m *model.Payment) *PaymentEntity {
	if m == nil {
		return nil
	}
	return &PaymentEntity{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Method:        m.Method,
		Date:          m.Date,
	}
}

func toPaymentModel(e *PaymentEntity) *model.Payment {
	if e == nil {
		return nil
	}
	return &model.Payment{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		Method:        e.Method,
		Date:          e.Date,
	}
}

func toPaymentModels(entities []*PaymentEntity) []*model.Payment {
	if entities == nil {
		return nil
	}
	models := make([]*model.Payment, len(entities))
	for i, e := range entities {
		models[i] = toPaymentModel(e)
	}
	return models
}
