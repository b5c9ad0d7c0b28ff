package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "Kshs 0.00", formatMoney(0))
	assert.Equal(t, "Kshs 45.50", formatMoney(45.5))
	assert.Equal(t, "Kshs 1,234.56", formatMoney(1234.56))
	assert.Equal(t, "Kshs 1,234,567.89", formatMoney(1234567.89))
	assert.Equal(t, "Kshs -1,234.50", formatMoney(-1234.5))
}

func TestReceiptService_TransactionReceiptPDF(t *testing.T) {
	fx := setupLedger(t)
	ctx := context.Background()

	c, err := fx.catalog.AddCustomer(ctx, model.CustomerCreateRequest{Name: "Wanjiku", Phone: "0712345678"})
	require.NoError(t, err)
	p, err := fx.catalog.AddProduct(ctx, model.ProductCreateRequest{Name: "Cooking Oil 1L", Price: 320})
	require.NoError(t, err)

	txn, err := fx.ledger.AddCredit(ctx, model.AddCreditRequest{
		CustomerID:  c.ID,
		LendingDate: "2026-04-01",
		Items:       []model.CreditItemInput{{ProductID: p.ID, Quantity: 2, UnitPrice: 320}},
	})
	require.NoError(t, err)

	data, err := fx.receipts.TransactionReceiptPDF(ctx, txn.ID)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	t.Run("missing transaction yields an empty document", func(t *testing.T) {
		data, err := fx.receipts.TransactionReceiptPDF(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestReceiptService_PaymentReceiptPDF(t *testing.T) {
	fx := setupLedger(t)
	ctx := context.Background()

	c, err := fx.catalog.AddCustomer(ctx, model.CustomerCreateRequest{Name: "Otieno", Phone: "0722000000"})
	require.NoError(t, err)
	p, err := fx.catalog.AddProduct(ctx, model.ProductCreateRequest{Name: "Sugar 1kg", Price: 165})
	require.NoError(t, err)

	txn, err := fx.ledger.AddCredit(ctx, model.AddCreditRequest{
		CustomerID:  c.ID,
		LendingDate: "2026-04-01",
		Items:       []model.CreditItemInput{{ProductID: p.ID, Quantity: 1, UnitPrice: 165}},
	})
	require.NoError(t, err)

	payment, err := fx.ledger.RecordPayment(ctx, txn.ID, model.RecordPaymentRequest{Amount: 65, Method: "Mpesa", Date: "2026-04-10"})
	require.NoError(t, err)

	data, err := fx.receipts.PaymentReceiptPDF(ctx, payment.ID)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	t.Run("missing payment yields an empty document", func(t *testing.T) {
		data, err := fx.receipts.PaymentReceiptPDF(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}
