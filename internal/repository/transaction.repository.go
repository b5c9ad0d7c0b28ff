package repository

import (
	"context"
	"errors"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository struct {
	*sqldb.DB
}

func NewTransactionRepository(db *sqldb.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.CreditTransaction) (*model.CreditTransaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*model.CreditTransaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

// FindOpenByCustomer returns the customer's most recent transaction that
// is not fully paid, or ErrTransactionNotFound when every transaction is
// settled. New credit is always appended to this transaction.
func (r *TransactionRepository) FindOpenByCustomer(ctx context.Context, customerID int64) (*model.CreditTransaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("customer_id = ? AND status <> ?", customerID, string(model.StatusPaid)).
		Order("date DESC, id DESC").
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&TransactionEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("customer_id = ?", customerID).
		Count(&count).
		Error
	return count, err
}

// GetHeader returns the invoice header for a transaction, joined with
// the owning customer's name.
func (r *TransactionRepository) GetHeader(ctx context.Context, id int64) (*model.TransactionHeader, error) {
	var row model.TransactionHeader

	result := r.Read(ctx).WithContext(ctx).
		Table("credit_transactions AS t").
		Select("t.id AS transaction_id, c.name AS customer_name, t.date AS date, t.status AS status").
		Joins("JOIN customers AS c ON c.id = t.customer_id").
		Where("t.id = ?", id).
		Scan(&row)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTransactionNotFound
	}

	return &row, nil
}

// GroupedAccounts lists transactions with their item and payment sums.
// The sums come from correlated subqueries so a transaction with many
// items and many payments is still counted once.
func (r *TransactionRepository) GroupedAccounts(ctx context.Context, f model.AccountFilter) ([]*model.AccountView, error) {
	q := r.Read(ctx).WithContext(ctx).
		Table("credit_transactions AS t").
		Select(`
            t.id          AS transaction_id,
            t.customer_id AS customer_id,
            c.name        AS customer_name,
            t.date        AS date,
            t.status      AS status,
            COALESCE((SELECT SUM(ci.total_price) FROM credit_items ci WHERE ci.transaction_id = t.id), 0) AS total_amount,
            COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.transaction_id = t.id), 0)             AS total_paid
        `).
		Joins("JOIN customers AS c ON c.id = t.customer_id")

	if f.CustomerName != nil && *f.CustomerName != "" {
		q = q.Where("c.name LIKE ?", "%"+*f.CustomerName+"%")
	}
	if f.Status != nil && *f.Status != "" {
		q = q.Where("t.status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("t.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("t.date <= ?", *f.To)
	}

	var rows []*model.AccountView
	if err := q.Order("t.date DESC, t.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// TopOwedCustomers returns the customers with the highest positive
// balance across all of their transactions, largest first.
func (r *TransactionRepository) TopOwedCustomers(ctx context.Context, limit int) ([]*model.CustomerBalance, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []*model.CustomerBalance
	err := r.Read(ctx).WithContext(ctx).Raw(`
        SELECT customer_id, name, balance FROM (
            SELECT
                c.id   AS customer_id,
                c.name AS name,
                COALESCE((SELECT SUM(ci.total_price)
                          FROM credit_items ci
                          JOIN credit_transactions ti ON ti.id = ci.transaction_id
                          WHERE ti.customer_id = c.id), 0)
              - COALESCE((SELECT SUM(p.amount)
                          FROM payments p
                          JOIN credit_transactions tp ON tp.id = p.transaction_id
                          WHERE tp.customer_id = c.id), 0) AS balance
            FROM customers c
        ) owed
        WHERE balance > 0
        ORDER BY balance DESC
        LIMIT ?
    `, limit).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// OutstandingByCustomer lists a customer's transactions that still carry
// a positive balance, oldest first. The filter runs on the computed
// balance rather than the cached status column.
func (r *TransactionRepository) OutstandingByCustomer(ctx context.Context, customerID int64) ([]*model.OutstandingCredit, error) {
	var rows []*model.OutstandingCredit

	err := r.Read(ctx).WithContext(ctx).Raw(`
        SELECT transaction_id, date, total_credit, total_paid FROM (
            SELECT
                t.id   AS transaction_id,
                t.date AS date,
                COALESCE((SELECT SUM(ci.total_price) FROM credit_items ci WHERE ci.transaction_id = t.id), 0) AS total_credit,
                COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.transaction_id = t.id), 0)             AS total_paid
            FROM credit_transactions t
            WHERE t.customer_id = ?
        ) owed
        WHERE total_credit - total_paid > 0
        ORDER BY date ASC, transaction_id ASC
    `, customerID).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
