// Package config loads runtime settings with viper: built-in defaults, an
// optional pos.yaml in the working directory, then POS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
	DriverNone     = "none"
)

type CatalogConfig struct {
	Driver   string
	Path     string
	Encoding string
}

type InvoiceConfig struct {
	Dir      string
	Currency string
}

// Config holds every knob of the application. The zero-config defaults
// reproduce the plain products.txt + invoice-in-cwd behaviour.
type Config struct {
	Catalog           CatalogConfig
	MovementsDriver   string
	SQLitePath        string
	PostgresDSN       string
	RedisAddr         string
	Invoice           InvoiceConfig
	Markup            decimal.Decimal
	LowStockThreshold int
	LogLevel          string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.driver", DriverFile)
	v.SetDefault("catalog.path", "products.txt")
	v.SetDefault("catalog.encoding", "")
	v.SetDefault("movements.driver", DriverNone)
	v.SetDefault("sqlite.path", "shop.db")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("invoice.dir", ".")
	v.SetDefault("invoice.currency", "Rs.")
	v.SetDefault("pricing.markup", "2")
	v.SetDefault("inventory.low_stock_threshold", 5)
	v.SetDefault("log.level", "info")
}

// Load reads configuration from dir (pos.yaml is optional) and the environment.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("pos")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	markup, err := decimal.NewFromString(v.GetString("pricing.markup"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid pricing.markup: %w", err)
	}
	if !markup.IsPositive() {
		return Config{}, fmt.Errorf("pricing.markup must be greater than zero, got %s", markup)
	}

	cfg := Config{
		Catalog: CatalogConfig{
			Driver:   strings.ToLower(v.GetString("catalog.driver")),
			Path:     v.GetString("catalog.path"),
			Encoding: v.GetString("catalog.encoding"),
		},
		MovementsDriver: strings.ToLower(v.GetString("movements.driver")),
		SQLitePath:      v.GetString("sqlite.path"),
		PostgresDSN:     v.GetString("postgres.dsn"),
		RedisAddr:       v.GetString("redis.addr"),
		Invoice: InvoiceConfig{
			Dir:      v.GetString("invoice.dir"),
			Currency: v.GetString("invoice.currency"),
		},
		Markup:            markup,
		LowStockThreshold: v.GetInt("inventory.low_stock_threshold"),
		LogLevel:          v.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Catalog.Driver {
	case DriverFile, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported catalog.driver %q (allowed: file, sqlite, postgres)", c.Catalog.Driver)
	}

	switch c.MovementsDriver {
	case DriverNone, DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unsupported movements.driver %q (allowed: none, memory, sqlite, postgres, redis)", c.MovementsDriver)
	}

	if (c.Catalog.Driver == DriverPostgres || c.MovementsDriver == DriverPostgres) && c.PostgresDSN == "" {
		return errors.New("postgres.dsn is required when a postgres driver is selected")
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("inventory.low_stock_threshold cannot be negative, got %d", c.LowStockThreshold)
	}
	return nil
}
