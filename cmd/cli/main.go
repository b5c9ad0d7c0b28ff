package main

import (
	"context"
	"os"
	"strings"

	"github.com/dukani/credit-ledger/internal/config"
	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/internal/services"
	"github.com/dukani/credit-ledger/pkg/sqldb"
	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if err := config.Load(getEnvPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	switch command() {
	case "migrate":
		runMigrate()
	case "seed":
		runSeed()
	default:
		log.Fatal().Msg("usage: cli <migrate|seed> [--env=.env] [--dir=./migrations]")
	}
}

func command() string {
	for _, v := range os.Args[1:] {
		if !strings.HasPrefix(v, "--") {
			return v
		}
	}
	return ""
}

func runMigrate() {
	if config.Get().DBDriver == sqldb.DriverPostgres {
		conf := sqldb.Config{
			User:     config.Get().PostgresUser,
			Host:     config.Get().PostgresHost,
			Port:     config.Get().PostgresPort,
			Password: config.Get().PostgresPassword,
			Database: config.Get().PostgresDatabase,
		}
		if err := sqldb.Migrate(conf, getMigrationPath()); err != nil {
			log.Fatal().Err(err).Msg("migrate: error running migrations")
		}
		log.Info().Msg("migrate: postgres migrations applied")
		return
	}

	gormDB, err := sqldb.Create(sqldb.Config{
		Driver: sqldb.DriverSqlite,
		Path:   config.Get().SqlitePath,
	}, false)
	if err != nil {
		log.Fatal().Err(err).Msg("migrate: failed opening sqlite store")
	}
	if err := repository.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate: failed ensuring sqlite schema")
	}
	log.Info().Str("path", config.Get().SqlitePath).Msg("migrate: sqlite schema ensured")
}

// runSeed loads a small demo dataset so a fresh install has something to
// look at.
func runSeed() {
	gormDB, err := sqldb.Create(sqldb.Config{
		Driver:   config.Get().DBDriver,
		Path:     config.Get().SqlitePath,
		User:     config.Get().PostgresUser,
		Host:     config.Get().PostgresHost,
		Port:     config.Get().PostgresPort,
		Password: config.Get().PostgresPassword,
		Database: config.Get().PostgresDatabase,
	}, false)
	if err != nil {
		log.Fatal().Err(err).Msg("seed: failed opening store")
	}
	if err := repository.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("seed: failed ensuring schema")
	}
	db := sqldb.FromGorm(gormDB)

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	catalog := services.NewCatalogService(customerRepo, productRepo, transactionRepo, itemRepo)
	ledger := services.NewLedgerService(transactionRepo, itemRepo, paymentRepo, customerRepo, productRepo)

	ctx := context.Background()

	wanjiku, err := catalog.AddCustomer(ctx, model.CustomerCreateRequest{Name: "Wanjiku Kamau", Phone: "0712345678"})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: failed creating customer")
	}
	otieno, err := catalog.AddCustomer(ctx, model.CustomerCreateRequest{Name: "Otieno Odhiambo", Phone: "0723456789"})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: failed creating customer")
	}

	unga, err := catalog.AddProduct(ctx, model.ProductCreateRequest{Name: "Unga 2kg", Price: 180})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: failed creating product")
	}
	sukari, err := catalog.AddProduct(ctx, model.ProductCreateRequest{Name: "Sukari 1kg", Price: 210})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: failed creating product")
	}

	txn, err := ledger.AddCredit(ctx, model.AddCreditRequest{
		CustomerID:  wanjiku.ID,
		LendingDate: "2026-08-01",
		Items: []model.CreditItemInput{
			{ProductID: unga.ID, Quantity: 2, UnitPrice: unga.Price},
			{ProductID: sukari.ID, Quantity: 1, UnitPrice: sukari.Price},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: failed recording credit")
	}
	if _, err := ledger.RecordPayment(ctx, txn.ID, model.RecordPaymentRequest{
		Amount: 200,
		Method: "Cash",
		Date:   "2026-08-15",
	}); err != nil {
		log.Fatal().Err(err).Msg("seed: failed recording payment")
	}

	if _, err := ledger.AddCredit(ctx, model.AddCreditRequest{
		CustomerID:  otieno.ID,
		LendingDate: "2026-08-20",
		Items: []model.CreditItemInput{
			{ProductID: sukari.ID, Quantity: 3, UnitPrice: sukari.Price},
		},
	}); err != nil {
		log.Fatal().Err(err).Msg("seed: failed recording credit")
	}

	log.Info().Msg("seed: demo data loaded")
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				log.Error().Err(err).Msg("failed to open the passed env file")
				return ""
			}
			return s[1]
		}
	}
	return ""
}

func getMigrationPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--dir=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				log.Error().Err(err).Msg("failed to open the passed migration dir")
				return ""
			}
			return s[1]
		}
	}
	return "./migrations"
}
