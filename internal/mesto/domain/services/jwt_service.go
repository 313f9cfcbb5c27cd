package services

import (
	"errors"
	"time"
)

// DefaultTokenTTL - срок жизни токена сессии.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Ошибки токенов.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
	ErrEmptySecretKey     = errors.New("empty JWT secret key")
)

// JWTConfig содержит настройки подписи токенов.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims - содержимое токена сессии.
type JWTClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
