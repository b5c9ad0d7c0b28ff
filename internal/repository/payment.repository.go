package repository

import (
	"context"
	"errors"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

type PaymentRepository struct {
	*sqldb.DB
}

func NewPaymentRepository(db *sqldb.DB) *PaymentRepository {
	return &PaymentRepository{
		db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	entity := toPaymentEntity(p)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toPaymentModel(entity), nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var entity PaymentEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return toPaymentModel(&entity), nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&PaymentEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) DeleteByTransaction(ctx context.Context, transactionID int64) error {
	return r.Write(ctx).WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&PaymentEntity{}).
		Error
}

func (r *PaymentRepository) SumByTransaction(ctx context.Context, transactionID int64) (float64, error) {
	var total float64
	err := r.Read(ctx).WithContext(ctx).
		Model(&PaymentEntity{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("transaction_id = ?", transactionID).
		Scan(&total).
		Error
	return total, err
}

func (r *PaymentRepository) ListByTransaction(ctx context.Context, transactionID int64) ([]*model.Payment, error) {
	var entities []*PaymentEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("date ASC, id ASC").
		Find(&entities).
		Error

	if err != nil {
		return nil, err
	}

	return toPaymentModels(entities), nil
}

// HistoryByCustomer lists every payment the customer has made across
// all transactions, most recent first.
func (r *PaymentRepository) HistoryByCustomer(ctx context.Context, customerID int64) ([]*model.PaymentRecord, error) {
	var rows []*model.PaymentRecord

	err := r.Read(ctx).WithContext(ctx).
		Table("payments AS p").
		Select("p.id AS id, p.transaction_id AS transaction_id, p.amount AS amount, p.method AS method, p.date AS date").
		Joins("JOIN credit_transactions AS t ON t.id = p.transaction_id").
		Where("t.customer_id = ?", customerID).
		Order("p.date DESC, p.id DESC").
		Scan(&rows).
		Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetReceiptHeader joins a payment with its transaction and customer
// for the payment receipt.
func (r *PaymentRepository) GetReceiptHeader(ctx context.Context, paymentID int64) (*model.PaymentReceiptHeader, error) {
	var row model.PaymentReceiptHeader

	result := r.Read(ctx).WithContext(ctx).
		Table("payments AS p").
		Select(`
            p.id             AS payment_id,
            p.transaction_id AS transaction_id,
            c.name           AS customer_name,
            t.status         AS status,
            p.amount         AS amount,
            p.method         AS method,
            p.date           AS date
        `).
		Joins("JOIN credit_transactions AS t ON t.id = p.transaction_id").
		Joins("JOIN customers AS c ON c.id = t.customer_id").
		Where("p.id = ?", paymentID).
		Scan(&row)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPaymentNotFound
	}

	return &row, nil
}
