// Package errorhandler превращает любую ошибку конвейера в HTTP ответ
// вида {"message": "..."}.
package errorhandler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/domain/failure"
	"mesto/pkg/logger"
)

// MsgInternal - единственное сообщение, которое клиент видит при внутренней ошибке.
const MsgInternal = "internal server error"

// Константы для логирования.
const (
	LogUnexpectedError = "unexpected error while handling request"
	LogWriteFailed     = "failed to write error response"
)

// Response - тело ответа с ошибкой.
type Response struct {
	Message string `json:"message"`
}

// New создает ErrorHandler для fiber. Он всегда возвращает nil.
func New() fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		ctx := pipeline.RequestContext(c)

		status, message := Resolve(ctx, err)

		if werr := c.Status(status).JSON(Response{Message: message}); werr != nil {
			logger.Log(ctx).Error(ctx, LogWriteFailed, zap.Error(werr))
			return nil
		}
		pipeline.Advance(c, pipeline.PhaseResponded)
		return nil
	}
}

// Resolve выбирает статус и сообщение для ошибки. Внутренние и нераспознанные
// ошибки логируются и заменяются на MsgInternal.
func Resolve(ctx context.Context, err error) (int, string) {
	if f, ok := failure.From(err); ok && f.Kind != failure.Internal {
		return f.Kind.Status(), f.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return fiberErr.Code, fiberErr.Message
	}

	logger.Log(ctx).Error(ctx, LogUnexpectedError, zap.Error(err))
	return fiber.StatusInternalServerError, MsgInternal
}
