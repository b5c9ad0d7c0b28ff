package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/repository"
)

var (
	ErrCustomerInUse = errors.New("customer has credit transactions")
	ErrProductInUse  = errors.New("product is referenced by credit items")
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, search string) ([]*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, search string) ([]*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type TransactionCounter interface {
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
}

type ItemCounter interface {
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}

// CatalogService manages the customer and product registers. Deletion
// is refused while the ledger still references the record.
type CatalogService struct {
	customerRepo CustomerRepository
	productRepo  ProductRepository
	txCounter    TransactionCounter
	itemCounter  ItemCounter
}

func NewCatalogService(customerRepo CustomerRepository, productRepo ProductRepository, txCounter TransactionCounter, itemCounter ItemCounter) *CatalogService {
	return &CatalogService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txCounter:    txCounter,
		itemCounter:  itemCounter,
	}
}

func (s *CatalogService) AddCustomer(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &model.Customer{
		Name:  strings.TrimSpace(p.Name),
		Phone: strings.TrimSpace(p.Phone),
	}
	created, err := s.customerRepo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListCustomers(ctx context.Context, search string) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx, strings.TrimSpace(search))
}

func (s *CatalogService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := s.txCounter.CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCustomerInUse
		}

		if err := s.customerRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}

func (s *CatalogService) AddProduct(ctx context.Context, p model.ProductCreateRequest) (*model.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, &model.Product{
		Name:  strings.TrimSpace(p.Name),
		Price: p.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, search string) ([]*model.Product, error) {
	return s.productRepo.List(ctx, strings.TrimSpace(search))
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.customerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := s.itemCounter.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrProductInUse
		}

		if err := s.productRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}
