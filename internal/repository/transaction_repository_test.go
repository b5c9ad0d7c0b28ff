package repository

import (
	"context"
	"testing"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_FindOpenByCustomer(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 1, Name: "Wanjiku"}).Error)

	t.Run("no transactions at all", func(t *testing.T) {
		_, err := repo.FindOpenByCustomer(ctx, 1)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("paid transactions are skipped", func(t *testing.T) {
		require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 10, CustomerID: 1, Date: "2026-01-05", Status: "Paid"}).Error)

		_, err := repo.FindOpenByCustomer(ctx, 1)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("most recent open transaction wins", func(t *testing.T) {
		require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 11, CustomerID: 1, Date: "2026-02-01", Status: "Unpaid"}).Error)
		require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 12, CustomerID: 1, Date: "2026-03-01", Status: "Partially Paid"}).Error)

		txn, err := repo.FindOpenByCustomer(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(12), txn.ID)
		assert.Equal(t, model.StatusPartiallyPaid, txn.Status)
	})

	t.Run("other customers do not leak", func(t *testing.T) {
		require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 2, Name: "Otieno"}).Error)

		_, err := repo.FindOpenByCustomer(ctx, 2)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestTransactionRepository_GroupedAccounts(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 1, Name: "Wanjiku"}).Error)
	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 2, Name: "Otieno"}).Error)

	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 1, CustomerID: 1, Date: "2026-01-10", Status: "Partially Paid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 2, CustomerID: 2, Date: "2026-02-20", Status: "Unpaid"}).Error)

	// Two items and two payments on the same transaction must not
	// multiply each other through a join.
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 1, ProductID: 1, Quantity: 2, UnitPrice: 100, TotalPrice: 200}).Error)
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 1, ProductID: 2, Quantity: 1, UnitPrice: 150, TotalPrice: 150}).Error)
	require.NoError(t, db.Write(ctx).Create(&PaymentEntity{TransactionID: 1, Amount: 50, Method: "Cash", Date: "2026-01-15"}).Error)
	require.NoError(t, db.Write(ctx).Create(&PaymentEntity{TransactionID: 1, Amount: 100, Method: "Mpesa", Date: "2026-01-20"}).Error)

	t.Run("sums count each row once", func(t *testing.T) {
		rows, err := repo.GroupedAccounts(ctx, model.AccountFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		// Ordered by date descending.
		assert.Equal(t, int64(2), rows[0].TransactionID)
		assert.Equal(t, float64(0), rows[0].TotalAmount)

		assert.Equal(t, int64(1), rows[1].TransactionID)
		assert.Equal(t, float64(350), rows[1].TotalAmount)
		assert.Equal(t, float64(150), rows[1].TotalPaid)
	})

	t.Run("filter by customer name", func(t *testing.T) {
		name := "Wanji"
		rows, err := repo.GroupedAccounts(ctx, model.AccountFilter{CustomerName: &name})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Wanjiku", rows[0].CustomerName)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := model.StatusUnpaid
		rows, err := repo.GroupedAccounts(ctx, model.AccountFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].TransactionID)
	})

	t.Run("filter by date range", func(t *testing.T) {
		from, to := "2026-01-01", "2026-01-31"
		rows, err := repo.GroupedAccounts(ctx, model.AccountFilter{From: &from, To: &to})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2026-01-10", rows[0].Date)
	})
}

func TestTransactionRepository_TopOwedCustomers(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 1, Name: "Wanjiku"}).Error)
	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 2, Name: "Otieno"}).Error)
	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 3, Name: "Achieng"}).Error)

	// Wanjiku owes 300 across two transactions.
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 1, CustomerID: 1, Date: "2026-01-01", Status: "Unpaid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 2, CustomerID: 1, Date: "2026-02-01", Status: "Partially Paid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 1, ProductID: 1, Quantity: 1, UnitPrice: 100, TotalPrice: 100}).Error)
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 2, ProductID: 1, Quantity: 3, UnitPrice: 100, TotalPrice: 300}).Error)
	require.NoError(t, db.Write(ctx).Create(&PaymentEntity{TransactionID: 2, Amount: 100, Method: "Cash", Date: "2026-02-10"}).Error)

	// Otieno is fully settled.
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 3, CustomerID: 2, Date: "2026-01-15", Status: "Paid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 3, ProductID: 1, Quantity: 2, UnitPrice: 100, TotalPrice: 200}).Error)
	require.NoError(t, db.Write(ctx).Create(&PaymentEntity{TransactionID: 3, Amount: 200, Method: "Mpesa", Date: "2026-01-20"}).Error)

	// Achieng owes 50.
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 4, CustomerID: 3, Date: "2026-03-01", Status: "Unpaid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 4, ProductID: 1, Quantity: 1, UnitPrice: 50, TotalPrice: 50}).Error)

	rows, err := repo.TopOwedCustomers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Wanjiku", rows[0].Name)
	assert.Equal(t, float64(300), rows[0].Balance)
	assert.Equal(t, "Achieng", rows[1].Name)
	assert.Equal(t, float64(50), rows[1].Balance)

	t.Run("limit caps the list", func(t *testing.T) {
		rows, err := repo.TopOwedCustomers(ctx, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Wanjiku", rows[0].Name)
	})
}

func TestTransactionRepository_OutstandingByCustomer(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 1, Name: "Wanjiku"}).Error)
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 1, CustomerID: 1, Date: "2026-01-01", Status: "Paid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 2, CustomerID: 1, Date: "2026-02-01", Status: "Partially Paid"}).Error)
	require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 2, ProductID: 1, Quantity: 4, UnitPrice: 25, TotalPrice: 100}).Error)
	require.NoError(t, db.Write(ctx).Create(&PaymentEntity{TransactionID: 2, Amount: 40, Method: "Cash", Date: "2026-02-05"}).Error)

	rows, err := repo.OutstandingByCustomer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(2), rows[0].TransactionID)
	assert.Equal(t, float64(100), rows[0].TotalCredit)
	assert.Equal(t, float64(40), rows[0].TotalPaid)

	t.Run("oldest debt listed first", func(t *testing.T) {
		require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 3, CustomerID: 1, Date: "2026-01-01", Status: "Unpaid"}).Error)
		require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 3, ProductID: 1, Quantity: 1, UnitPrice: 50, TotalPrice: 50}).Error)
		require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 4, CustomerID: 1, Date: "2026-03-01", Status: "Unpaid"}).Error)
		require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 4, ProductID: 1, Quantity: 1, UnitPrice: 75, TotalPrice: 75}).Error)

		rows, err := repo.OutstandingByCustomer(ctx, 1)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "2026-01-01", rows[0].Date)
		assert.Equal(t, "2026-02-01", rows[1].Date)
		assert.Equal(t, "2026-03-01", rows[2].Date)
	})

	t.Run("filters on the computed balance, not the status cache", func(t *testing.T) {
		// fully covered but still labelled open
		require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 5, CustomerID: 1, Date: "2026-04-01", Status: "Unpaid"}).Error)
		require.NoError(t, db.Write(ctx).Create(&ItemEntity{TransactionID: 5, ProductID: 1, Quantity: 1, UnitPrice: 30, TotalPrice: 30}).Error)
		require.NoError(t, db.Write(ctx).Create(&PaymentEntity{TransactionID: 5, Amount: 30, Method: "Cash", Date: "2026-04-02"}).Error)

		rows, err := repo.OutstandingByCustomer(ctx, 1)
		require.NoError(t, err)
		for _, row := range rows {
			assert.NotEqual(t, int64(5), row.TransactionID)
		}
	})
}

func TestTransactionRepository_GetHeader(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Write(ctx).Create(&CustomerEntity{ID: 1, Name: "Wanjiku"}).Error)
	require.NoError(t, db.Write(ctx).Create(&TransactionEntity{ID: 7, CustomerID: 1, Date: "2026-04-01", Status: "Unpaid"}).Error)

	header, err := repo.GetHeader(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Wanjiku", header.CustomerName)
	assert.Equal(t, "2026-04-01", header.Date)
	assert.Equal(t, model.StatusUnpaid, header.Status)

	_, err = repo.GetHeader(ctx, 999)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
