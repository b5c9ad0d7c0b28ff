package repository

import (
	"context"
	"errors"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
)

type CustomerRepository struct {
	*sqldb.DB
}

func NewCustomerRepository(db *sqldb.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

// List returns customers ordered by name. An empty search matches all.
func (r *CustomerRepository) List(ctx context.Context, search string) ([]*model.Customer, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{})

	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var entities []*CustomerEntity
	if err := q.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":  c.Name,
			"phone": c.Phone,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&CustomerEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
