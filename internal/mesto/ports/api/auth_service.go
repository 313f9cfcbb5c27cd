// Package api определяет основные порты прикладного слоя.
package api

import (
	"context"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/services"
)

// AuthUseCase - выдача учетных данных: регистрация и вход.
type AuthUseCase interface {
	Signup(ctx context.Context, input services.SignupInput) (*entities.User, error)

	Signin(ctx context.Context, email, password string) (*services.Session, error)
}
