// Package config loads environment-based configuration into tagged structs.
//
// It wraps github.com/caarlos0/env with one-time .env file loading via
// godotenv, so services read configuration the same way in development and
// production. Configuration problems are treated as deployment errors:
// Load returns them and MustLoad panics.
package config
