package repository

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the ledger schema. This is the sqlite
// path; postgres deployments run the versioned migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CustomerEntity{},
		&ProductEntity{},
		&TransactionEntity{},
		&ItemEntity{},
		&PaymentEntity{},
	)
}
