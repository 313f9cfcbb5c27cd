// Package repositories определяет контракты хранилища.
package repositories

import (
	"context"
	"errors"

	"mesto/internal/mesto/domain/entities"
)

// Типизированные результаты хранилища. Адаптеры обязаны возвращать их
// (возможно, обернутыми) вместо собственных кодов ошибок.
var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrInvalidRecord  = errors.New("record rejected by storage schema")
)

// UserRepository определяет операции хранения пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	List(ctx context.Context) ([]*entities.User, error)

	UpdateProfile(ctx context.Context, id, name, about string) (*entities.User, error)

	UpdateAvatar(ctx context.Context, id, avatar string) (*entities.User, error)
}
