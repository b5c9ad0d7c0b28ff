package repository

import (
	"context"
	"errors"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("credit item not found")
)

type ItemRepository struct {
	*sqldb.DB
}

func NewItemRepository(db *sqldb.DB) *ItemRepository {
	return &ItemRepository{
		db,
	}
}

func (r *ItemRepository) CreateBatch(ctx context.Context, items []*model.CreditItem) ([]*model.CreditItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	entities := make([]*ItemEntity, len(items))
	for i, it := range items {
		entities[i] = toItemEntity(it)
	}

	if err := r.Write(ctx).WithContext(ctx).Create(&entities).Error; err != nil {
		return nil, err
	}

	return toItemModels(entities), nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*model.CreditItem, error) {
	var entity ItemEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return toItemModel(&entity), nil
}

// Update rewrites an item's quantity, unit price and the derived total.
func (r *ItemRepository) Update(ctx context.Context, item *model.CreditItem) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"total_price": item.TotalPrice,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&ItemEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteByTransaction(ctx context.Context, transactionID int64) error {
	return r.Write(ctx).WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&ItemEntity{}).
		Error
}

func (r *ItemRepository) SumByTransaction(ctx context.Context, transactionID int64) (float64, error) {
	var total float64
	err := r.Read(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("transaction_id = ?", transactionID).
		Scan(&total).
		Error
	return total, err
}

func (r *ItemRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where("product_id = ?", productID).
		Count(&count).
		Error
	return count, err
}

// ListWithProducts returns a transaction's items joined with product
// names and the transaction's lending date, ordered by date then
// product name. This is the row set printed on receipts.
func (r *ItemRepository) ListWithProducts(ctx context.Context, transactionID int64) ([]*model.ReceiptLine, error) {
	var rows []*model.ReceiptLine

	err := r.Read(ctx).WithContext(ctx).
		Table("credit_items AS ci").
		Select(`
            pr.name        AS product,
            ci.quantity    AS quantity,
            ci.unit_price  AS unit_price,
            ci.total_price AS total_price,
            t.date         AS date
        `).
		Joins("JOIN products AS pr ON pr.id = ci.product_id").
		Joins("JOIN credit_transactions AS t ON t.id = ci.transaction_id").
		Where("ci.transaction_id = ?", transactionID).
		Order("t.date ASC, pr.name ASC").
		Scan(&rows).
		Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
