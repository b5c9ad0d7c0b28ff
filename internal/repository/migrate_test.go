package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAutoMigrateIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"customers", "products", "credit_transactions", "credit_items", "payments"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}
}
