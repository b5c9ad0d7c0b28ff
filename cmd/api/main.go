package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dukani/credit-ledger/internal/auth"
	"github.com/dukani/credit-ledger/internal/config"
	"github.com/dukani/credit-ledger/internal/handlers"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/internal/services"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
	"github.com/dukani/credit-ledger/pkg/logger"
	"github.com/dukani/credit-ledger/pkg/prom"
	"github.com/dukani/credit-ledger/pkg/redis"
	"github.com/dukani/credit-ledger/pkg/sqldb"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 10))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	db, err := openStore()
	if err != nil {
		logger.Error("failed opening the store", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	host, _ := os.Hostname()
	if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
		logger.Error("failed registering metrics", "error", err)
		return
	}

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// services
	ledgerService := services.NewLedgerService(transactionRepo, itemRepo, paymentRepo, customerRepo, productRepo)
	reportService := services.NewReportService(transactionRepo, paymentRepo, customerRepo)
	receiptService := services.NewReceiptService(transactionRepo, itemRepo, paymentRepo)
	catalogService := services.NewCatalogService(customerRepo, productRepo, transactionRepo, itemRepo)
	healthService := services.NewHealthService(db)
	authService := auth.NewService(
		config.Get().AdminUser,
		config.Get().AdminPassword,
		config.Get().SessionTTL,
		redisAdap,
	)

	// v1 handlers
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	reportHandler := handlers.NewReportHandler(reportService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(healthService)
	authHandler := handlers.NewAuthHandler(authService)

	s.Use(handlers.SessionMiddleware(authService))

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterLedgerRoutes(g, ledgerHandler)
	handlers.RegisterReportRoutes(g, reportHandler)
	handlers.RegisterReceiptRoutes(g, receiptHandler)
	handlers.RegisterCatalogRoutes(g, catalogHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)
	s.Router.GET("/metrics", prom.Handler())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting http server", "addr", config.Get().HttpListenAddr, "version", version)
		if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

// openStore connects per DB_DRIVER. The sqlite path ensures the schema
// at startup; postgres schemas are managed with the cli migrate command.
func openStore() (*sqldb.DB, error) {
	debug := config.Get().AppEnv == "dev" && config.Get().AppDebug

	if config.Get().DBDriver == sqldb.DriverPostgres {
		conf := sqldb.Config{
			Driver:   sqldb.DriverPostgres,
			User:     config.Get().PostgresUser,
			Host:     config.Get().PostgresHost,
			Port:     config.Get().PostgresPort,
			Password: config.Get().PostgresPassword,
			Database: config.Get().PostgresDatabase,
		}
		return sqldb.Open(conf, debug)
	}

	gormDB, err := sqldb.Create(sqldb.Config{
		Driver: sqldb.DriverSqlite,
		Path:   config.Get().SqlitePath,
	}, debug)
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(gormDB); err != nil {
		return nil, err
	}
	return sqldb.FromGorm(gormDB), nil
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
