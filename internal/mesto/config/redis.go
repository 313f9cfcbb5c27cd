package config

import (
	"fmt"
	"time"

	"mesto/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host         string        `yaml:"host" env:"MESTO_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"MESTO_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"MESTO_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"MESTO_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"MESTO_REDIS_POOL_SIZE" env-default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"MESTO_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"MESTO_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"MESTO_REDIS_WRITE_TIMEOUT" env-default:"3s"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig преобразует настройки в конфигурацию клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
