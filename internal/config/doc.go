// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the settings needed by the server, the connection pool and the
// record service while keeping configuration details out of business logic.
package config
