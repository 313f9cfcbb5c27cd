package api

import (
	"context"

	"mesto/internal/mesto/domain/entities"
)

// UserUseCase - операции с профилями.
type UserUseCase interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)

	GetUser(ctx context.Context, userID string) (*entities.User, error)

	UpdateProfile(ctx context.Context, userID, name, about string) (*entities.User, error)

	UpdateAvatar(ctx context.Context, userID, avatar string) (*entities.User, error)
}
