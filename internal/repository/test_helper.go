package repository

import (
	"reflect"
	"testing"

	"github.com/dukani/credit-ledger/pkg/sqldb"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*sqldb.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = AutoMigrate(db)
	require.NoError(t, err)

	sqlDB := &sqldb.DB{}
	sqlDBValue := reflect.ValueOf(sqlDB).Elem()

	readField := sqlDBValue.FieldByName("read")
	writeField := sqlDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return &testDB{
		DB:    sqlDB,
		rawDB: db,
	}
}
