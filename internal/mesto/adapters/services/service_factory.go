// Package services содержит реализации сервисов паролей и токенов.
package services

import (
	"time"

	"mesto/internal/mesto/ports/services"
)

// ServiceFactory создает сервисы безопасности.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(jwtSecretKey string, tokenTTL time.Duration, bcryptCost, hashWorkers int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost, hashWorkers),
		tokenService:    NewJWT(jwtSecretKey, tokenTTL),
	}
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
