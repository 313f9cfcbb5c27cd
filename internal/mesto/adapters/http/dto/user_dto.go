package dto

import "mesto/internal/mesto/domain/entities"

// UpdateProfileRequest содержит новые имя и описание.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

// UpdateAvatarRequest содержит новую ссылку на аватар.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UserResponse - публичный профиль пользователя.
type UserResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// NewUserResponse создает публичный профиль.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}

// NewUserList создает список публичных профилей.
func NewUserList(users []*entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
