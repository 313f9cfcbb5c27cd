// Package middleware содержит промежуточное ПО и стадии конвейера для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/domain/failure"
	svc "mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

// BearerPrefix - схема передачи токена в заголовке Authorization.
const BearerPrefix = "Bearer "

// Константы для логирования.
const (
	MsgAuthorizationRequired = "authorization required"

	LogNoAuthHeader  = "no bearer authorization header provided"
	LogTokenRejected = "session token rejected"
	LogAuthenticated = "request authenticated"
)

// Authenticate возвращает стадию проверки токена сессии. Любая причина отказа
// дает один и тот же Unauthorized.
func Authenticate(tokens svc.TokenService) pipeline.Stage {
	return pipeline.Stage{
		Name:  "authenticate",
		Phase: pipeline.PhaseAuthenticated,
		Run: func(c fiber.Ctx) error {
			ctx := pipeline.RequestContext(c)
			log := logger.Log(ctx).With(zap.String("middleware", "auth"))

			header := c.Get(fiber.HeaderAuthorization)
			if !strings.HasPrefix(header, BearerPrefix) {
				log.Debug(ctx, LogNoAuthHeader)
				return failure.NewUnauthorized(MsgAuthorizationRequired)
			}

			subject, err := tokens.ValidateToken(ctx, strings.TrimPrefix(header, BearerPrefix))
			if err != nil {
				log.Debug(ctx, LogTokenRejected, zap.Error(err))
				return failure.Wrap(failure.Unauthorized, MsgAuthorizationRequired, err)
			}

			pipeline.SetSubject(c, subject)
			log.Debug(ctx, LogAuthenticated, zap.String("subject", subject))
			return nil
		},
	}
}
