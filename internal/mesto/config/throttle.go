package config

import "time"

// ThrottleConfig - ограничение числа запросов с одного адреса.
type ThrottleConfig struct {
	Enabled bool          `yaml:"enabled" env:"MESTO_THROTTLE_ENABLED" env-default:"true"`
	Limit   int           `yaml:"limit" env:"MESTO_THROTTLE_LIMIT" env-default:"1008"`
	Window  time.Duration `yaml:"window" env:"MESTO_THROTTLE_WINDOW" env-default:"24h"`
	Prefix  string        `yaml:"prefix" env:"MESTO_THROTTLE_PREFIX" env-default:"mesto:throttle:"`

	// Circuit Breaker вокруг Redis: после BreakerThreshold ошибок подряд
	// счетчик не опрашивается BreakerCooldown.
	BreakerThreshold int           `yaml:"breaker_threshold" env:"MESTO_THROTTLE_BREAKER_THRESHOLD" env-default:"5"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown" env:"MESTO_THROTTLE_BREAKER_COOLDOWN" env-default:"10s"`
}
