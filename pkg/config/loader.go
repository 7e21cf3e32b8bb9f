package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load populates the configuration struct from environment variables based
// on `env` field tags. A .env file in the working directory is loaded once
// per process before the first parse; a missing file is not an error.
//
// Example:
//
//	type DBConfig struct {
//		URL          string `env:"DATABASE_URL,required"`
//		MaxOpenConns int32  `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
//	}
//
//	var cfg DBConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
// It panics on failure, which surfaces deployment mistakes immediately
// instead of deferring them to the first request.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}
