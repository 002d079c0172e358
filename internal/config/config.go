package config

import (
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Records  RecordsConfig  `mapstructure:"records"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// MaxBodyBytes caps the size of JSON request bodies.
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the store endpoint and connection pool settings.
// It is read once when the pool is first opened; changes require a restart.
type DatabaseConfig struct {
	// URL, when set, is used verbatim and overrides the discrete endpoint fields.
	URL      string `mapstructure:"url"      validate:"omitempty,url"`
	Host     string `mapstructure:"host"     validate:"required_without=URL"`
	Port     int    `mapstructure:"port"     validate:"gt=0,lt=65536"`
	User     string `mapstructure:"user"     validate:"required_without=URL"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"     validate:"required_without=URL"`

	// Encrypt turns on TLS to the store.
	Encrypt bool `mapstructure:"encrypt"`
	// TrustServerCertificate skips certificate verification when Encrypt is set.
	TrustServerCertificate bool `mapstructure:"trust_server_certificate"`

	MaxOpenConns        int           `mapstructure:"max_open_conns"        validate:"gt=0"`
	MaxIdleConns        int           `mapstructure:"max_idle_conns"        validate:"gte=0"`
	ConnMaxLifetime     time.Duration `mapstructure:"conn_max_lifetime"     validate:"gte=0"`
	ConnectTimeout      time.Duration `mapstructure:"connect_timeout"       validate:"gt=0"`
	QueryTimeout        time.Duration `mapstructure:"query_timeout"         validate:"gt=0"`
	HealthCheckInterval time.Duration `mapstructure:"health_check_interval" validate:"gte=0"`
}

// RecordsConfig contains settings for the record service.
type RecordsConfig struct {
	// PageSize is the number of records on one page of list and search results.
	PageSize int `mapstructure:"page_size" validate:"gt=0,lte=1000"`
}
