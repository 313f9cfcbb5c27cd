package middleware

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mesto/internal/mesto/adapters/http/pipeline"
	svc "mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

// Заголовки ответа с состоянием лимита.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
)

// MsgTooManyRequests - сообщение при превышении лимита.
const MsgTooManyRequests = "too many requests, please try again later"

// ErrTooManyRequests возвращается, когда клиент исчерпал лимит.
var ErrTooManyRequests = fiber.NewError(fiber.StatusTooManyRequests, MsgTooManyRequests)

// NewThrottleMiddleware ограничивает число запросов с одного IP. Если счетчик
// недоступен, запрос пропускается: отказ Redis не должен останавливать API.
func NewThrottleMiddleware(throttle svc.Throttle) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := pipeline.RequestContext(c)

		decision, err := throttle.Allow(ctx, c.IP())
		if err != nil {
			logger.Log(ctx).Warn(ctx, "throttle unavailable, request let through", zap.Error(err))
			return c.Next()
		}

		c.Set(HeaderRateLimit, strconv.Itoa(decision.Limit))
		c.Set(HeaderRateRemaining, strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(decision.ResetIn.Seconds()))))
			return ErrTooManyRequests
		}
		return c.Next()
	}
}
