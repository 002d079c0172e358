package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment variables read by Load.
const EnvPrefix = "ROLODEX"

// configKeys lists every key Load knows about. Viper only resolves environment
// variables for keys it has seen, so each key is bound explicitly.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"server.max_body_bytes",
	"server.shutdown_timeout",
	"database.url",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.name",
	"database.encrypt",
	"database.trust_server_certificate",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime",
	"database.connect_timeout",
	"database.query_timeout",
	"database.health_check_interval",
	"records.page_size",
}

// setDefaults registers default values on the given viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.max_body_bytes", 2000*1024)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.encrypt", true)
	v.SetDefault("database.trust_server_certificate", true)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.connect_timeout", "15s")
	v.SetDefault("database.query_timeout", "15s")
	v.SetDefault("database.health_check_interval", "30s")

	v.SetDefault("records.page_size", 4)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Optional config file: ./config.yaml or ./config/config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a Config against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
