package helpers

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/pkg/redis"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *sqldb.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = repository.AutoMigrate(db)
	require.NoError(t, err)

	ledgerDB := &sqldb.DB{}
	ledgerDBValue := reflect.ValueOf(ledgerDB).Elem()

	readField := ledgerDBValue.FieldByName("read")
	writeField := ledgerDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return ledgerDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestCustomer(t *testing.T, db *sqldb.DB, name, phone string) *repository.CustomerEntity {
	ctx := context.Background()
	customer := &repository.CustomerEntity{
		Name:  name,
		Phone: phone,
	}
	err := db.Write(ctx).Create(customer).Error
	require.NoError(t, err)
	return customer
}

func CreateTestProduct(t *testing.T, db *sqldb.DB, name string, price float64) *repository.ProductEntity {
	ctx := context.Background()
	product := &repository.ProductEntity{
		Name:  name,
		Price: price,
	}
	err := db.Write(ctx).Create(product).Error
	require.NoError(t, err)
	return product
}

func CreateTestTransaction(t *testing.T, db *sqldb.DB, customerID int64, date, status string) *repository.TransactionEntity {
	ctx := context.Background()
	txn := &repository.TransactionEntity{
		CustomerID: customerID,
		Date:       date,
		Status:     status,
	}
	err := db.Write(ctx).Create(txn).Error
	require.NoError(t, err)
	return txn
}

func CreateTestItem(t *testing.T, db *sqldb.DB, transactionID, productID int64, quantity int, unitPrice float64) *repository.ItemEntity {
	ctx := context.Background()
	item := &repository.ItemEntity{
		TransactionID: transactionID,
		ProductID:     productID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    float64(quantity) * unitPrice,
	}
	err := db.Write(ctx).Create(item).Error
	require.NoError(t, err)
	return item
}

func CreateTestPayment(t *testing.T, db *sqldb.DB, transactionID int64, amount float64, method, date string) *repository.PaymentEntity {
	ctx := context.Background()
	payment := &repository.PaymentEntity{
		TransactionID: transactionID,
		Amount:        amount,
		Method:        method,
		Date:          date,
	}
	err := db.Write(ctx).Create(payment).Error
	require.NoError(t, err)
	return payment
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func Ptr[T any](v T) *T {
	return &v
}
