package sqldb

import (
	"github.com/dukani/credit-ledger/pkg/logger"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Migrate applies the goose SQL migrations for postgres deployments.
// The sqlite path does not use goose; its schema is ensured additively
// at startup (see repository.AutoMigrate).
func Migrate(cfg Config, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal(err)
	}

	db, err := newSqlConnection(cfg)
	if err != nil {
		return err
	}
	if err = goose.Up(db, dir); err != nil {
		logger.Fatal(err)
	}

	return nil
}
