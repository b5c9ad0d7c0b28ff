package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/pkg/prom"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidAmount    = errors.New("payment amount must be positive")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidUnitPrice = errors.New("unit price cannot be negative")
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.CreditTransaction) (*model.CreditTransaction, error)
	GetByID(ctx context.Context, id int64) (*model.CreditTransaction, error)
	FindOpenByCustomer(ctx context.Context, customerID int64) (*model.CreditTransaction, error)
	UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus) error
	Delete(ctx context.Context, id int64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ItemRepository interface {
	CreateBatch(ctx context.Context, items []*model.CreditItem) ([]*model.CreditItem, error)
	GetByID(ctx context.Context, id int64) (*model.CreditItem, error)
	Update(ctx context.Context, item *model.CreditItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByTransaction(ctx context.Context, transactionID int64) error
	SumByTransaction(ctx context.Context, transactionID int64) (float64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) (*model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByTransaction(ctx context.Context, transactionID int64) error
	SumByTransaction(ctx context.Context, transactionID int64) (float64, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// LedgerService owns every mutation of the credit ledger. Each
// operation runs its writes and the status recalculation inside one
// store transaction, so the stored status never drifts from the sums.
type LedgerService struct {
	txRepo       TransactionRepository
	itemRepo     ItemRepository
	paymentRepo  PaymentRepository
	customerRepo CustomerReader
	productRepo  ProductReader
	now          func() time.Time
}

func NewLedgerService(txRepo TransactionRepository, itemRepo ItemRepository, paymentRepo PaymentRepository, customerRepo CustomerReader, productRepo ProductReader) *LedgerService {
	return &LedgerService{
		txRepo:       txRepo,
		itemRepo:     itemRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// classify derives a transaction's status from its sums. The branch
// order is significant: an overpaid transaction is Paid, not partial.
func classify(totalCredit, totalPaid float64) model.TransactionStatus {
	balance := round2(totalCredit - totalPaid)
	switch {
	case balance <= 0:
		return model.StatusPaid
	case totalPaid > 0 && totalPaid < totalCredit:
		return model.StatusPartiallyPaid
	default:
		return model.StatusUnpaid
	}
}

// AddCredit lends items to a customer. The items land on the customer's
// latest open transaction; a new one dated at the lending date is
// opened when every prior transaction is settled.
func (s *LedgerService) AddCredit(ctx context.Context, p model.AddCreditRequest) (*model.CreditTransaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := time.Parse(model.DateLayout, p.LendingDate); err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.customerRepo.GetByID(ctx, p.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load customer: %w", err)
	}

	var out *model.CreditTransaction
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.txRepo.FindOpenByCustomer(ctx, p.CustomerID)
		if errors.Is(err, repository.ErrTransactionNotFound) {
			txn, err = s.txRepo.Create(ctx, &model.CreditTransaction{
				CustomerID: p.CustomerID,
				Date:       p.LendingDate,
				Status:     model.StatusUnpaid,
			})
		}
		if err != nil {
			return err
		}

		items := make([]*model.CreditItem, 0, len(p.Items))
		for _, in := range p.Items {
			product, err := s.productRepo.GetByID(ctx, in.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("load product: %w", err)
			}

			// A zero unit price means "charge the catalog price".
			unit := in.UnitPrice
			if unit == 0 {
				unit = product.Price
			}

			items = append(items, &model.CreditItem{
				TransactionID: txn.ID,
				ProductID:     in.ProductID,
				Quantity:      in.Quantity,
				UnitPrice:     unit,
				TotalPrice:    round2(float64(in.Quantity) * unit),
			})
		}

		if _, err := s.itemRepo.CreateBatch(ctx, items); err != nil {
			return fmt.Errorf("create items: %w", err)
		}

		_, status, err := s.recalc(ctx, txn.ID)
		if err != nil {
			return err
		}
		txn.Status = status
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncCreditsRecorded()
	return out, nil
}

// RecalcBalance re-derives and persists a transaction's status and
// returns the current balance. Safe to call any number of times.
func (s *LedgerService) RecalcBalance(ctx context.Context, transactionID int64) (float64, error) {
	if _, err := s.txRepo.GetByID(ctx, transactionID); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var balance float64
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		balance, _, err = s.recalc(ctx, transactionID)
		return err
	})
	return balance, err
}

func (s *LedgerService) recalc(ctx context.Context, transactionID int64) (float64, model.TransactionStatus, error) {
	credit, err := s.itemRepo.SumByTransaction(ctx, transactionID)
	if err != nil {
		return 0, "", fmt.Errorf("sum items: %w", err)
	}
	paid, err := s.paymentRepo.SumByTransaction(ctx, transactionID)
	if err != nil {
		return 0, "", fmt.Errorf("sum payments: %w", err)
	}

	status := classify(credit, paid)
	if err := s.txRepo.UpdateStatus(ctx, transactionID, status); err != nil {
		return 0, "", err
	}

	prom.IncRecalculations()
	return round2(credit - paid), status, nil
}

func (s *LedgerService) RecordPayment(ctx context.Context, transactionID int64, p model.RecordPaymentRequest) (*model.Payment, error) {
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := time.Parse(model.DateLayout, p.Date); err != nil {
		return nil, ErrInvalidDate
	}

	var created *model.Payment
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.txRepo.GetByID(ctx, transactionID); err != nil {
			if errors.Is(err, repository.ErrTransactionNotFound) {
				return ErrNotFound
			}
			return err
		}

		payment, err := s.paymentRepo.Create(ctx, &model.Payment{
			TransactionID: transactionID,
			Amount:        p.Amount,
			Method:        p.Method,
			Date:          p.Date,
		})
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		created = payment

		_, _, err = s.recalc(ctx, transactionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	prom.IncPaymentsRecorded()
	return created, nil
}

// DeletePayment removes a payment and re-derives the owning
// transaction's status. Returns the owning transaction id.
func (s *LedgerService) DeletePayment(ctx context.Context, paymentID int64) (int64, error) {
	var transactionID int64
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, repository.ErrPaymentNotFound) {
				return ErrNotFound
			}
			return err
		}
		transactionID = payment.TransactionID

		if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
			return err
		}

		_, _, err = s.recalc(ctx, transactionID)
		return err
	})
	if err != nil {
		return 0, err
	}

	prom.IncPaymentsDeleted()
	return transactionID, nil
}

// UpdateItem rewrites an item's quantity and unit price, snapshots the
// new total and re-derives the owning transaction. Returns the owning
// transaction id.
func (s *LedgerService) UpdateItem(ctx context.Context, itemID int64, quantity int, unitPrice float64) (int64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return 0, ErrInvalidUnitPrice
	}

	var transactionID int64
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrNotFound
			}
			return err
		}
		transactionID = item.TransactionID

		item.Quantity = quantity
		item.UnitPrice = unitPrice
		item.TotalPrice = round2(float64(quantity) * unitPrice)
		if err := s.itemRepo.Update(ctx, item); err != nil {
			return err
		}

		_, _, err = s.recalc(ctx, transactionID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return transactionID, nil
}

// DeleteItem removes one item row and re-derives the owning
// transaction. Returns the owning transaction id.
func (s *LedgerService) DeleteItem(ctx context.Context, itemID int64) (int64, error) {
	var transactionID int64
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrNotFound
			}
			return err
		}
		transactionID = item.TransactionID

		if err := s.itemRepo.Delete(ctx, itemID); err != nil {
			return err
		}

		_, _, err = s.recalc(ctx, transactionID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return transactionID, nil
}

// DeleteTransaction removes a transaction together with its items and
// payments, in one unit of work.
func (s *LedgerService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	return s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.txRepo.GetByID(ctx, transactionID); err != nil {
			if errors.Is(err, repository.ErrTransactionNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.itemRepo.DeleteByTransaction(ctx, transactionID); err != nil {
			return err
		}
		if err := s.paymentRepo.DeleteByTransaction(ctx, transactionID); err != nil {
			return err
		}
		return s.txRepo.Delete(ctx, transactionID)
	})
}

// MarkFullyPaid settles a transaction by recording a payment of exactly
// the outstanding balance, dated today with method "Manual". A
// transaction with nothing outstanding is left untouched.
func (s *LedgerService) MarkFullyPaid(ctx context.Context, transactionID int64) (*model.Payment, error) {
	var created *model.Payment
	err := s.txRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.txRepo.GetByID(ctx, transactionID); err != nil {
			if errors.Is(err, repository.ErrTransactionNotFound) {
				return ErrNotFound
			}
			return err
		}

		credit, err := s.itemRepo.SumByTransaction(ctx, transactionID)
		if err != nil {
			return err
		}
		paid, err := s.paymentRepo.SumByTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		balance := round2(credit - paid)
		if balance <= 0 {
			return nil
		}

		payment, err := s.paymentRepo.Create(ctx, &model.Payment{
			TransactionID: transactionID,
			Amount:        balance,
			Method:        "Manual",
			Date:          s.now().Format(model.DateLayout),
		})
		if err != nil {
			return err
		}
		created = payment

		_, _, err = s.recalc(ctx, transactionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if created != nil {
		prom.IncPaymentsRecorded()
	}
	return created, nil
}
