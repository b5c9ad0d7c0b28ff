package sqldb

import (
	"database/sql"
	"fmt"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver   string `env:"DRIVER"`
	Path     string `env:"PATH"` // sqlite database file
	User     string `env:"USER"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	Password string `env:"PASSWORD"`
	Database string `env:"DBNAME"`
}

func (c Config) dsn() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", c.Host, c.User, c.Password, c.Database, c.Port)
}

func newSqlConnection(config Config) (*sql.DB, error) {
	return sql.Open("postgres", config.dsn())
}
