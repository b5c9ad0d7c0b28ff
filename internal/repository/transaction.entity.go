package repository

import (
	"github.com/dukani/credit-ledger/internal/model"
)

type TransactionEntity struct {
	ID         int64  `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID int64  `db:"customer_id" gorm:"column:customer_id;not null;index"`
	Date       string `db:"date"        gorm:"column:date;not null"`
	Status     string `db:"status"      gorm:"column:status;not null;default:Unpaid"`
}

func (TransactionEntity) TableName() string {
	return "credit_transactions"
}

func toTransactionEntity(m *model.CreditTransaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Date:       m.Date,
		Status:     string(m.Status),
	}
}

func toTransactionModel(e *TransactionEntity) *model.CreditTransaction {
	if e == nil {
		return nil
	}
	return &model.CreditTransaction{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		Date:       e.Date,
		Status:     model.TransactionStatus(e.Status),
	}
}
