package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Оно же создает контекст запроса с logger и request id. Ошибку цепочки
// отрисовывает ErrorHandler приложения до записи итогового статуса в лог.
func NewLoggerMiddleware(base *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		c.Set(HeaderRequestID, requestID)

		requestCtx := logger.NewRequestIDContext(c.Context(), requestID)
		requestCtx = logger.NewContext(requestCtx, base)
		pipeline.SetRequestContext(c, requestCtx)

		log := base.With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)
		log.Info(requestCtx, "Request started")

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				log.Error(requestCtx, "Failed to render error response", zap.Error(err))
			}
		}

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if chainErr != nil {
			log.Warn(requestCtx, "Request failed", append(fields, zap.Error(chainErr))...)
			return nil
		}

		log.Info(requestCtx, "Request completed", fields...)
		return nil
	}
}
