package repository

import (
	"context"
	"errors"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"gorm.io/gorm"
)

type ProductRepository struct {
	*sqldb.DB
}

func NewProductRepository(db *sqldb.DB) *ProductRepository {
	return &ProductRepository{
		db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	entity := toProductEntity(p)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toProductModel(entity), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var entity ProductEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return toProductModel(&entity), nil
}

func (r *ProductRepository) List(ctx context.Context, search string) ([]*model.Product, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&ProductEntity{})

	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var entities []*ProductEntity
	if err := q.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toProductModels(entities), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ProductEntity{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":  p.Name,
			"price": p.Price,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&ProductEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
