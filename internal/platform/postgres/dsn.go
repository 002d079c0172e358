package postgres

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/phrazzld/rolodex-api/internal/config"
)

const defaultPort = 5432

// SSLMode derives the libpq sslmode from the transport-security flags.
//
//	encrypt=false                                 -> disable
//	encrypt=true,  trust_server_certificate=true  -> require (no verification)
//	encrypt=true,  trust_server_certificate=false -> verify-full
func SSLMode(cfg config.DatabaseConfig) string {
	switch {
	case !cfg.Encrypt:
		return "disable"
	case cfg.TrustServerCertificate:
		return "require"
	default:
		return "verify-full"
	}
}

// DSN returns the connection string for cfg. A configured URL wins over the
// discrete endpoint fields.
func DSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else if cfg.User != "" {
		u.User = url.User(cfg.User)
	}

	q := url.Values{}
	q.Set("sslmode", SSLMode(cfg))
	if cfg.ConnectTimeout >= time.Second {
		q.Set("connect_timeout", strconv.Itoa(int(cfg.ConnectTimeout/time.Second)))
	}
	u.RawQuery = q.Encode()

	return u.String()
}
