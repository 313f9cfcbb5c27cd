// Package dto содержит объекты передачи данных HTTP API.
package dto

import "mesto/internal/mesto/domain/entities"

// SignupRequest содержит данные для регистрации пользователя.
type SignupRequest struct {
	Name     string `json:"name"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest содержит данные для входа пользователя.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse - профиль созданного пользователя без идентификатора и хэша.
type SignupResponse struct {
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// TokenResponse содержит токен сессии.
type TokenResponse struct {
	Token string `json:"token"`
}

// NewSignupResponse создает ответ на регистрацию.
func NewSignupResponse(u *entities.User) SignupResponse {
	return SignupResponse{
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}
