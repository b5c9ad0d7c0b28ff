package services

import (
	"context"

	"github.com/dukani/credit-ledger/pkg/sqldb"
)

// HealthService answers liveness checks with a round trip to the store.
type HealthService struct {
	db *sqldb.DB
}

func NewHealthService(db *sqldb.DB) *HealthService {
	return &HealthService{db: db}
}

func (s *HealthService) Get() error {
	var one int
	return s.db.Read(context.Background()).Raw("SELECT 1").Scan(&one).Error
}
