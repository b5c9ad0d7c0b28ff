package e2e

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dukani/credit-ledger/internal/auth"
	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/internal/services"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"github.com/dukani/credit-ledger/test/fixtures"
	"github.com/dukani/credit-ledger/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type TestEnvironment struct {
	DB              *sqldb.DB
	Redis           *miniredis.Miniredis
	CustomerRepo    *repository.CustomerRepository
	ProductRepo     *repository.ProductRepository
	TransactionRepo *repository.TransactionRepository
	ItemRepo        *repository.ItemRepository
	PaymentRepo     *repository.PaymentRepository
	Ledger          *services.LedgerService
	Reports         *services.ReportService
	Receipts        *services.ReceiptService
	Catalog         *services.CatalogService
	Auth            *auth.Service
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db := helpers.SetupTestDB(t)
	mr, adapter := helpers.SetupTestRedis(t)
	t.Cleanup(mr.Close)

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	return &TestEnvironment{
		DB:              db,
		Redis:           mr,
		CustomerRepo:    customerRepo,
		ProductRepo:     productRepo,
		TransactionRepo: transactionRepo,
		ItemRepo:        itemRepo,
		PaymentRepo:     paymentRepo,
		Ledger:          services.NewLedgerService(transactionRepo, itemRepo, paymentRepo, customerRepo, productRepo),
		Reports:         services.NewReportService(transactionRepo, paymentRepo, customerRepo),
		Receipts:        services.NewReceiptService(transactionRepo, itemRepo, paymentRepo),
		Catalog:         services.NewCatalogService(customerRepo, productRepo, transactionRepo, itemRepo),
		Auth:            auth.NewService("Admin", "hunter2", time.Hour, adapter),
	}
}

func (env *TestEnvironment) seedCatalog(t *testing.T, ctx context.Context) (*model.Customer, *model.Product, *model.Product) {
	customer, err := env.Catalog.AddCustomer(ctx, model.CustomerCreateRequest{
		Name:  fixtures.TestCustomerWanjiku.Name,
		Phone: fixtures.TestCustomerWanjiku.Phone,
	})
	require.NoError(t, err)

	unga, err := env.Catalog.AddProduct(ctx, model.ProductCreateRequest{
		Name:  fixtures.TestProductUnga.Name,
		Price: fixtures.TestProductUnga.Price,
	})
	require.NoError(t, err)

	sukari, err := env.Catalog.AddProduct(ctx, model.ProductCreateRequest{
		Name:  fixtures.TestProductSukari.Name,
		Price: fixtures.TestProductSukari.Price,
	})
	require.NoError(t, err)

	return customer, unga, sukari
}

func TestE2E_CreditLifecycle(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	customer, unga, sukari := env.seedCatalog(t, ctx)

	txn, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-01",
		fixtures.Item(unga.ID, 2, unga.Price),
		fixtures.Item(sukari.ID, 1, sukari.Price),
	))
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnpaid, txn.Status)

	// 2*180 + 210 = 570 owed
	outstanding, err := env.Reports.CustomerOutstanding(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, 570.0, outstanding[0].Balance)

	// a second credit lands on the same open transaction
	second, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-05",
		fixtures.Item(unga.ID, 1, unga.Price),
	))
	require.NoError(t, err)
	assert.Equal(t, txn.ID, second.ID)

	_, err = env.Ledger.RecordPayment(ctx, txn.ID, fixtures.NewRecordPaymentRequest(300, "Cash", "2026-08-10"))
	require.NoError(t, err)

	accounts, err := env.Reports.GroupedAccounts(ctx, model.AccountFilter{})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, model.StatusPartiallyPaid, accounts[0].Status)
	assert.Equal(t, 750.0, accounts[0].TotalAmount)
	assert.Equal(t, 450.0, accounts[0].Balance)

	settle, err := env.Ledger.MarkFullyPaid(ctx, txn.ID)
	require.NoError(t, err)
	require.NotNil(t, settle)
	assert.Equal(t, 450.0, settle.Amount)
	assert.Equal(t, "Manual", settle.Method)

	accounts, err = env.Reports.GroupedAccounts(ctx, fixtures.AccountFilterByStatus(model.StatusPaid))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 0.0, accounts[0].Balance)

	// settled transactions never absorb new credit
	third, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-20",
		fixtures.Item(sukari.ID, 1, sukari.Price),
	))
	require.NoError(t, err)
	assert.NotEqual(t, txn.ID, third.ID)
}

func TestE2E_PaymentDeleteReopensTransaction(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	customer, unga, _ := env.seedCatalog(t, ctx)

	txn, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-01",
		fixtures.Item(unga.ID, 1, 100),
	))
	require.NoError(t, err)

	payment, err := env.Ledger.RecordPayment(ctx, txn.ID, fixtures.NewRecordPaymentRequest(100, "M-Pesa", "2026-08-02"))
	require.NoError(t, err)

	accounts, err := env.Reports.GroupedAccounts(ctx, model.AccountFilter{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, accounts[0].Status)

	txnID, err := env.Ledger.DeletePayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, txnID)

	accounts, err = env.Reports.GroupedAccounts(ctx, model.AccountFilter{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnpaid, accounts[0].Status)
	assert.Equal(t, 100.0, accounts[0].Balance)
}

func TestE2E_DeleteTransactionCascades(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	customer, unga, _ := env.seedCatalog(t, ctx)

	txn, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-01",
		fixtures.Item(unga.ID, 1, 100),
	))
	require.NoError(t, err)
	_, err = env.Ledger.RecordPayment(ctx, txn.ID, fixtures.NewRecordPaymentRequest(40, "Cash", "2026-08-02"))
	require.NoError(t, err)

	require.NoError(t, env.Ledger.DeleteTransaction(ctx, txn.ID))

	accounts, err := env.Reports.GroupedAccounts(ctx, model.AccountFilter{})
	require.NoError(t, err)
	assert.Empty(t, accounts)

	var itemCount, paymentCount int64
	env.DB.Read(ctx).Model(&repository.ItemEntity{}).Where("transaction_id = ?", txn.ID).Count(&itemCount)
	env.DB.Read(ctx).Model(&repository.PaymentEntity{}).Where("transaction_id = ?", txn.ID).Count(&paymentCount)
	assert.Zero(t, itemCount)
	assert.Zero(t, paymentCount)

	// with the history gone the customer can be removed
	require.NoError(t, env.Catalog.DeleteCustomer(ctx, customer.ID))
}

func TestE2E_CatalogDeleteGuards(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	customer, unga, _ := env.seedCatalog(t, ctx)

	_, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-01",
		fixtures.Item(unga.ID, 1, 100),
	))
	require.NoError(t, err)

	err = env.Catalog.DeleteCustomer(ctx, customer.ID)
	assert.ErrorIs(t, err, services.ErrCustomerInUse)

	err = env.Catalog.DeleteProduct(ctx, unga.ID)
	assert.ErrorIs(t, err, services.ErrProductInUse)
}

func TestE2E_ReceiptsAndExport(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	customer, unga, sukari := env.seedCatalog(t, ctx)

	txn, err := env.Ledger.AddCredit(ctx, fixtures.NewAddCreditRequest(customer.ID, "2026-08-01",
		fixtures.Item(unga.ID, 2, unga.Price),
		fixtures.Item(sukari.ID, 1, sukari.Price),
	))
	require.NoError(t, err)

	payment, err := env.Ledger.RecordPayment(ctx, txn.ID, fixtures.NewRecordPaymentRequest(200, "Cash", "2026-08-10"))
	require.NoError(t, err)

	invoice, err := env.Receipts.TransactionReceiptPDF(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(invoice, []byte("%PDF")))

	receipt, err := env.Receipts.PaymentReceiptPDF(ctx, payment.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(receipt, []byte("%PDF")))

	data, err := env.Reports.ExportAccountsXLSX(ctx, model.AccountFilter{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Accounts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Customer", rows[0][1])
	assert.Equal(t, customer.Name, rows[1][1])
}

func TestE2E_SessionFlow(t *testing.T) {
	env := setupE2EEnvironment(t)

	_, err := env.Auth.Login("Admin", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	token, err := env.Auth.Login("Admin", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, env.Auth.Validate(token))

	env.Redis.FastForward(2 * time.Hour)
	assert.ErrorIs(t, env.Auth.Validate(token), auth.ErrInvalidToken)

	token, err = env.Auth.Login("Admin", "hunter2")
	require.NoError(t, err)
	require.NoError(t, env.Auth.Logout(token))
	assert.ErrorIs(t, env.Auth.Validate(token), auth.ErrInvalidToken)
}
