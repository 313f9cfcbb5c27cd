// Package cache содержит ограничитель частоты запросов на Redis и
// Circuit Breaker, защищающий обращения к нему.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

// Константы для логирования.
const (
	LogThrottleExceeded = "request limit exceeded"

	ErrorFailedToCount = "failed to count request in redis"
	ErrorFailedToArm   = "failed to set throttle window expiry"
)

// ErrInvalidThrottle возвращается при неположительных лимите или окне.
var ErrInvalidThrottle = errors.New("throttle limit and window must be positive")

// RedisThrottle считает запросы в фиксированном окне: первый запрос окна
// создает счетчик и задает ему срок жизни, равный окну.
type RedisThrottle struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
}

// NewRedisThrottle создает ограничитель с лимитом limit запросов за window.
func NewRedisThrottle(client redis.Cmdable, limit int, window time.Duration, prefix string) (services.Throttle, error) {
	if limit <= 0 || window <= 0 {
		return nil, ErrInvalidThrottle
	}
	return &RedisThrottle{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}, nil
}

// Allow учитывает запрос клиента key и сообщает, укладывается ли он в лимит.
func (t *RedisThrottle) Allow(ctx context.Context, key string) (services.ThrottleDecision, error) {
	redisKey := t.prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToCount, zap.Error(err), zap.String("key", redisKey))
		return services.ThrottleDecision{}, fmt.Errorf("%s: %w", ErrorFailedToCount, err)
	}

	count := int(incr.Val())
	resetIn := ttl.Val()

	// Счетчик без срока жизни: новый ключ или ключ, у которого срок потерялся.
	if count == 1 || resetIn < 0 {
		if err := t.client.PExpire(ctx, redisKey, t.window).Err(); err != nil {
			logger.Log(ctx).Error(ctx, ErrorFailedToArm, zap.Error(err), zap.String("key", redisKey))
			return services.ThrottleDecision{}, fmt.Errorf("%s: %w", ErrorFailedToArm, err)
		}
		resetIn = t.window
	}

	decision := services.ThrottleDecision{
		Allowed:   count <= t.limit,
		Limit:     t.limit,
		Remaining: max(t.limit-count, 0),
		ResetIn:   resetIn,
	}
	if !decision.Allowed {
		logger.Log(ctx).Debug(ctx, LogThrottleExceeded, zap.String("key", key), zap.Int("count", count))
	}
	return decision, nil
}
