package services

import (
	"reflect"
	"testing"

	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db           *sqldb.DB
	ledger       *LedgerService
	reports      *ReportService
	receipts     *ReceiptService
	catalog      *CatalogService
	customers    *repository.CustomerRepository
	products     *repository.ProductRepository
	transactions *repository.TransactionRepository
	items        *repository.ItemRepository
	payments     *repository.PaymentRepository
}

func setupLedger(t *testing.T) *ledgerFixture {
	raw, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(raw))

	db := &sqldb.DB{}
	v := reflect.ValueOf(db).Elem()
	for _, name := range []string{"read", "write"} {
		f := v.FieldByName(name)
		f = reflect.NewAt(f.Type(), f.Addr().UnsafePointer()).Elem()
		f.Set(reflect.ValueOf(raw))
	}

	customers := repository.NewCustomerRepository(db)
	products := repository.NewProductRepository(db)
	transactions := repository.NewTransactionRepository(db)
	items := repository.NewItemRepository(db)
	payments := repository.NewPaymentRepository(db)

	return &ledgerFixture{
		db:           db,
		ledger:       NewLedgerService(transactions, items, payments, customers, products),
		reports:      NewReportService(transactions, payments, customers),
		receipts:     NewReceiptService(transactions, items, payments),
		catalog:      NewCatalogService(customers, products, transactions, items),
		customers:    customers,
		products:     products,
		transactions: transactions,
		items:        items,
		payments:     payments,
	}
}
