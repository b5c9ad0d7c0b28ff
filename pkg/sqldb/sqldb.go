package sqldb

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

// DB wraps separate read and write gorm handles. With the sqlite driver
// both point at the same connection; with postgres a read replica can be
// plugged in via OpenReadWrite.
type DB struct {
	read  *gorm.DB
	write *gorm.DB
}

func Create(config Config, withDebug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.Open(config.dsn())
	case DriverSqlite, "":
		dialector = sqlite.Open(config.Path)
	default:
		return nil, fmt.Errorf("sqldb: unsupported driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if withDebug {
		db = db.Debug()
	}
	return db, nil
}

// Open connects a single handle used for both reads and writes. This is
// the path for sqlite, where a second connection to the same file would
// only contend for the write lock.
func Open(config Config, withDebug bool) (*DB, error) {
	db, err := Create(config, withDebug)
	if err != nil {
		return nil, err
	}
	return &DB{db, db}, nil
}

// FromGorm wraps an already opened handle for both reads and writes.
func FromGorm(db *gorm.DB) *DB {
	return &DB{db, db}
}

func OpenReadWrite(readConfig Config, writeConfig Config, withDebug bool) (*DB, error) {
	read, err := Create(readConfig, withDebug)
	if err != nil {
		return nil, err
	}
	write, err := Create(writeConfig, withDebug)
	if err != nil {
		return nil, err
	}
	return &DB{read, write}, nil
}

// WithinTransaction runs fn with a transaction bound into the context, so
// every repository call inside fn joins the same unit of work. A returned
// error rolls the whole unit back.
func (r *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	tx = r.write.WithContext(ctx)

	return tx
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	tx = r.read.WithContext(ctx)

	return tx
}
