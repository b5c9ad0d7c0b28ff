package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/dukani/credit-ledger/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds every configuration value the ledger reads. Only this
// struct may be used to access configuration; no direct env/ini lookups
// anywhere else in the codebase.
type Config struct {
	AppEnv   string `env:"APP_ENV" default:"dev"`
	AppName  string `env:"APP_NAME" default:"credit_ledger"`
	AppDebug bool   `env:"APP_DEBUG" default:"1"`

	HttpListenAddr         string `env:"HTTP_LISTEN_ADDR" default:":8080"`
	HttpServerReadTimeout  int    `env:"HTTP_SERVER_READ_TIMEOUT"`
	HttpServerWriteTimeout int    `env:"HTTP_SERVER_WRITE_TIMEOUT"`

	// sqlite is the default store; postgres is opt-in for shared deployments.
	DBDriver   string `env:"DB_DRIVER" default:"sqlite"`
	SqlitePath string `env:"SQLITE_PATH" default:"data/shop.db"`

	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDatabase string `env:"POSTGRES_DBNAME"`

	RedisAddr      string `env:"REDIS_ADDR"`
	RedisUsername  string `env:"REDIS_USER"`
	RedisPassword  string `env:"REDIS_PASS"`
	RedisDatabase  int    `env:"REDIS_DATABASE"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX"`

	// Static credential gate for the API. Not a security boundary.
	AdminUser     string        `env:"ADMIN_USER" default:"Admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	SessionTTL    time.Duration `env:"SESSION_TTL" default:"12h"`

	PromNamespace string `env:"PROM_NAMESPACE" default:"credit_ledger"`

	LogLevel []string `env:"LOG_LEVEL"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)

	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
