package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
)

// Session - выданный токен сессии и момент его истечения.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// SignupInput - данные для регистрации. Пустые поля профиля заменяются
// значениями по умолчанию.
type SignupInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}
