package config

import (
	"runtime"
	"time"
)

// JWTConfig содержит настройки токенов сессии и хэширования паролей.
type JWTConfig struct {
	SecretKey   string        `yaml:"secret_key" env:"MESTO_JWT_SECRET" env-required:"true"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"MESTO_JWT_TOKEN_TTL" env-default:"168h"`
	BCryptCost  int           `yaml:"bcrypt_cost" env:"MESTO_JWT_BCRYPT_COST" env-default:"10"`
	HashWorkers int           `yaml:"hash_workers" env:"MESTO_JWT_HASH_WORKERS" env-default:"0"`
}

// GetHashWorkers возвращает число параллельных хэширований; 0 означает GOMAXPROCS.
func (c *JWTConfig) GetHashWorkers() int {
	if c.HashWorkers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.HashWorkers
}
