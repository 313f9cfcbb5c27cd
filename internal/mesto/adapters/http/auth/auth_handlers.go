// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"github.com/gofiber/fiber/v3"

	"mesto/internal/mesto/adapters/http/dto"
	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/adapters/http/validation"
	"mesto/internal/mesto/domain/services"
	"mesto/internal/mesto/ports/api"
	"mesto/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSignup = "auth handler: signup"
	LogHandlerSignin = "auth handler: signin"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Signup обрабатывает регистрацию нового пользователя.
func (h *Handler) Signup(c fiber.Ctx) (any, error) {
	ctx := pipeline.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := validation.DecodeBody(c, &req); err != nil {
		return nil, err
	}

	user, err := h.authUseCase.Signup(ctx, services.SignupInput{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewSignupResponse(user), nil
}

// Signin обрабатывает вход пользователя и выдает токен.
func (h *Handler) Signin(c fiber.Ctx) (any, error) {
	ctx := pipeline.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerSignin)

	var req dto.SigninRequest
	if err := validation.DecodeBody(c, &req); err != nil {
		return nil, err
	}

	session, err := h.authUseCase.Signin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return dto.TokenResponse{Token: session.Token}, nil
}
