package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/ports/api"
	"mesto/internal/mesto/ports/repositories"
	"mesto/pkg/logger"
)

const (
	msgUsersListed      = "users listed"
	msgUserNotFound     = "user not found"
	msgProfileUpdated   = "profile updated"
	msgAvatarUpdated    = "avatar updated"
	msgProfileRejected  = "profile update rejected by storage schema"
	msgErrListUsers     = "failed to list users"
	msgErrGetUser       = "failed to get user"
	msgErrUpdateProfile = "failed to update profile"
	errCtxListingUsers  = "listing users"
	errCtxGettingUser   = "getting user"
	errCtxUpdatingUser  = "updating user"
	methodUpdateProfile = "UpdateProfile"
	methodUpdateAvatar  = "UpdateAvatar"
)

// UserUseCaseImpl реализует UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает сервис профилей.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

func (u *UserUseCaseImpl) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, failure.NewInternal(errCtxListingUsers, err)
	}
	logger.Log(ctx).Debug(ctx, msgUsersListed, zap.Int("count", len(users)))
	return users, nil
}

func (u *UserUseCaseImpl) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			logger.Log(ctx).Debug(ctx, msgUserNotFound, zap.String("userID", userID))
			return nil, failure.Wrap(failure.NotFound, MsgUserNotFound, err)
		}
		logger.Log(ctx).Error(ctx, msgErrGetUser, zap.Error(err), zap.String("userID", userID))
		return nil, failure.NewInternal(errCtxGettingUser, err)
	}
	return user, nil
}

// UpdateProfile меняет имя и описание аутентифицированного пользователя.
func (u *UserUseCaseImpl) UpdateProfile(ctx context.Context, userID, name, about string) (*entities.User, error) {
	user, err := u.userRepo.UpdateProfile(ctx, userID, name, about)
	if err != nil {
		return nil, u.updateFailure(ctx, methodUpdateProfile, userID, MsgInvalidProfileData, err)
	}
	logger.Log(ctx).Info(ctx, msgProfileUpdated, zap.String("userID", userID))
	return user, nil
}

// UpdateAvatar меняет аватар аутентифицированного пользователя.
func (u *UserUseCaseImpl) UpdateAvatar(ctx context.Context, userID, avatar string) (*entities.User, error) {
	user, err := u.userRepo.UpdateAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, u.updateFailure(ctx, methodUpdateAvatar, userID, MsgInvalidAvatarData, err)
	}
	logger.Log(ctx).Info(ctx, msgAvatarUpdated, zap.String("userID", userID))
	return user, nil
}

func (u *UserUseCaseImpl) updateFailure(ctx context.Context, method, userID, rejected string, err error) error {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("userID", userID))
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		log.Debug(ctx, msgUserNotFound)
		return failure.Wrap(failure.NotFound, MsgUserNotFound, err)
	case errors.Is(err, repositories.ErrInvalidRecord):
		log.Debug(ctx, msgProfileRejected, zap.Error(err))
		return failure.Wrap(failure.BadRequest, rejected, err)
	default:
		log.Error(ctx, msgErrUpdateProfile, zap.Error(err))
		return failure.NewInternal(errCtxUpdatingUser, err)
	}
}
