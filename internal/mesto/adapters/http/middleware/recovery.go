package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/domain/failure"
	"mesto/pkg/logger"
)

// NewRecoveryMiddleware создает промежуточное ПО, превращающее панику
// в ошибку Internal для ErrorHandler.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				ctx := pipeline.RequestContext(c)
				logger.Log(ctx).Error(ctx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = failure.NewInternal("recovered from panic", fmt.Errorf("%v", r))
			}
		}()

		return c.Next()
	}
}
