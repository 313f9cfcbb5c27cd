package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/domain/services"
	"mesto/internal/mesto/ports/api"
	"mesto/internal/mesto/ports/repositories"
	svc "mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

const (
	methodSignup = "Signup"
	methodSignin = "Signin"

	msgStartSignup         = "starting user registration"
	msgEmailExists         = "user with this email already exists"
	msgSignupRejected      = "user rejected by storage schema"
	msgUserRegistered      = "user registered successfully"
	msgSigninAttempt       = "signin attempt"
	msgSigninNonExistent   = "signin attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserSignedIn        = "user signed in successfully"

	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate session token"
	msgErrDummyHash         = "failed to prepare dummy password hash"

	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxGeneratingToken   = "generating token"
)

// AuthUseCaseImpl реализует AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthUseCase создает сервис выдачи учетных данных.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Signup хэширует пароль и создает пользователя.
func (a *AuthUseCaseImpl) Signup(ctx context.Context, input services.SignupInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignup), zap.String("email", input.Email))
	log.Debug(ctx, msgStartSignup)

	hash, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooLong) {
			log.Debug(ctx, msgSignupRejected, zap.Error(err))
			return nil, failure.Wrap(failure.BadRequest, MsgInvalidSignupData, err)
		}
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, failure.NewInternal(errCtxHashingPassword, err)
	}

	user := entities.NewUser(input.Name, input.About, input.Avatar, input.Email, hash)

	created, err := a.userRepo.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			log.Debug(ctx, msgEmailExists)
			return nil, failure.Wrap(failure.Conflict, MsgEmailTaken, services.ErrEmailAlreadyExists)
		case errors.Is(err, repositories.ErrInvalidRecord):
			log.Debug(ctx, msgSignupRejected, zap.Error(err))
			return nil, failure.Wrap(failure.BadRequest, MsgInvalidSignupData, err)
		default:
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
			return nil, failure.NewInternal(errCtxCreatingUser, err)
		}
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID))
	return created, nil
}

// Signin проверяет email и пароль и выпускает токен сессии.
// Неизвестный email и неверный пароль дают одинаковый отказ.
func (a *AuthUseCaseImpl) Signin(ctx context.Context, email, password string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignin), zap.String("email", email))
	log.Debug(ctx, msgSigninAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgSigninNonExistent)
			a.burnVerify(ctx, password)
			return nil, failure.Wrap(failure.Unauthorized, MsgInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, failure.NewInternal(errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, failure.NewInternal(errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, failure.Wrap(failure.Unauthorized, MsgInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, expiresAt, err := a.tokenSvc.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, failure.NewInternal(errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgUserSignedIn, zap.String("userID", user.ID))
	return &services.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// dummyPassword хэшируется один раз; сравнение с ним уравнивает время ответа
// для неизвестного email и неверного пароля.
const dummyPassword = "mesto-dummy-password"

// burnVerify выполняет сравнение bcrypt с фиктивным хэшем. Результат не важен.
func (a *AuthUseCaseImpl) burnVerify(ctx context.Context, password string) {
	hash := a.dummy(ctx)
	if hash == "" {
		return
	}
	_, _ = a.passwordSvc.Verify(ctx, password, hash)
}

// dummy возвращает фиктивный хэш с текущей стоимостью bcrypt. Неудачная
// попытка не запоминается.
func (a *AuthUseCaseImpl) dummy(ctx context.Context) string {
	a.dummyMu.Lock()
	defer a.dummyMu.Unlock()

	if a.dummyHash != "" {
		return a.dummyHash
	}
	hash, err := a.passwordSvc.Hash(context.WithoutCancel(ctx), dummyPassword)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrDummyHash, zap.Error(err))
		return ""
	}
	a.dummyHash = hash
	return hash
}
