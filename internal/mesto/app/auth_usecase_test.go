package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesto/internal/mesto/app"
	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/domain/services"
	"mesto/internal/mesto/ports/repositories"
)

var (
	errDatabase = errors.New("database connection error")
	errHasher   = errors.New("hasher unavailable")
	errSigner   = errors.New("signer unavailable")
)

const (
	testUserID   = "5f8f8c44b54764421b7156c3"
	testEmail    = "cousteau@example.com"
	testPassword = "secret1"
	testHash     = "$2a$10$hash"
	dummyHash    = "$2a$10$dummy"
)

func TestSignup(t *testing.T) {
	tests := []struct {
		name      string
		input     services.SignupInput
		setup     func(repo *mockUserRepository, pass *mockPasswordService)
		wantKind  failure.Kind
		wantErr   bool
		checkUser func(t *testing.T, user *entities.User)
	}{
		{
			name:  "defaults applied to omitted profile fields",
			input: services.SignupInput{Email: testEmail, Password: testPassword},
			setup: func(repo *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Name == entities.DefaultUserName &&
						u.About == entities.DefaultUserAbout &&
						u.Avatar == entities.DefaultUserAvatar &&
						u.PasswordHash == testHash
				})).Return(&entities.User{
					ID: testUserID, Name: entities.DefaultUserName, About: entities.DefaultUserAbout,
					Avatar: entities.DefaultUserAvatar, Email: testEmail, PasswordHash: testHash,
				}, nil).Once()
			},
			checkUser: func(t *testing.T, user *entities.User) {
				assert.Equal(t, testUserID, user.ID)
				assert.Equal(t, entities.DefaultUserName, user.Name)
			},
		},
		{
			name:  "password is never stored in plain text",
			input: services.SignupInput{Name: "Ada", Email: testEmail, Password: testPassword},
			setup: func(repo *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.PasswordHash != testPassword && u.Name == "Ada"
				})).Return(&entities.User{ID: testUserID, Name: "Ada", Email: testEmail}, nil).Once()
			},
			checkUser: func(t *testing.T, user *entities.User) {
				assert.Equal(t, "Ada", user.Name)
			},
		},
		{
			name:  "duplicate email is a conflict",
			input: services.SignupInput{Email: testEmail, Password: testPassword},
			setup: func(repo *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("insert user: %w", repositories.ErrDuplicateEmail)).Once()
			},
			wantErr:  true,
			wantKind: failure.Conflict,
		},
		{
			name:  "storage schema rejection is a bad request",
			input: services.SignupInput{Email: testEmail, Password: testPassword},
			setup: func(repo *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, repositories.ErrInvalidRecord).Once()
			},
			wantErr:  true,
			wantKind: failure.BadRequest,
		},
		{
			name:  "hashing failure is internal",
			input: services.SignupInput{Email: testEmail, Password: testPassword},
			setup: func(_ *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).Return("", errHasher).Once()
			},
			wantErr:  true,
			wantKind: failure.Internal,
		},
		{
			name:  "password over the hashing limit is a bad request",
			input: services.SignupInput{Email: testEmail, Password: testPassword},
			setup: func(_ *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).
					Return("", fmt.Errorf("hash: %w", services.ErrPasswordTooLong)).Once()
			},
			wantErr:  true,
			wantKind: failure.BadRequest,
		},
		{
			name:  "unexpected storage failure is internal",
			input: services.SignupInput{Email: testEmail, Password: testPassword},
			setup: func(repo *mockUserRepository, pass *mockPasswordService) {
				pass.On("Hash", mock.Anything, testPassword).Return(testHash, nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, errDatabase).Once()
			},
			wantErr:  true,
			wantKind: failure.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			pass := new(mockPasswordService)
			tokens := new(mockTokenService)
			tt.setup(repo, pass)

			uc := app.NewAuthUseCase(repo, pass, tokens)
			user, err := uc.Signup(context.Background(), tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, user)
				kind, ok := failure.KindOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, kind)
			} else {
				require.NoError(t, err)
				tt.checkUser(t, user)
			}

			repo.AssertExpectations(t)
			pass.AssertExpectations(t)
			tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
		})
	}
}

func TestSignin(t *testing.T) {
	stored := &entities.User{ID: testUserID, Email: testEmail, PasswordHash: testHash}
	expiresAt := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func(repo *mockUserRepository, pass *mockPasswordService, tokens *mockTokenService)
		wantKind  failure.Kind
		wantErr   bool
		wantToken string
	}{
		{
			name: "valid credentials yield a token",
			setup: func(repo *mockUserRepository, pass *mockPasswordService, tokens *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(stored, nil).Once()
				pass.On("Verify", mock.Anything, testPassword, testHash).Return(true, nil).Once()
				tokens.On("GenerateToken", mock.Anything, testUserID).Return("signed", expiresAt, nil).Once()
			},
			wantToken: "signed",
		},
		{
			name: "unknown email is unauthorized after a dummy comparison",
			setup: func(repo *mockUserRepository, pass *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, testEmail).
					Return(nil, fmt.Errorf("select: %w", entities.ErrUserNotFound)).Once()
				pass.On("Hash", mock.Anything, mock.Anything).Return(dummyHash, nil).Once()
				pass.On("Verify", mock.Anything, testPassword, dummyHash).Return(false, nil).Once()
			},
			wantErr:  true,
			wantKind: failure.Unauthorized,
		},
		{
			name: "wrong password is unauthorized",
			setup: func(repo *mockUserRepository, pass *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(stored, nil).Once()
				pass.On("Verify", mock.Anything, testPassword, testHash).Return(false, nil).Once()
			},
			wantErr:  true,
			wantKind: failure.Unauthorized,
		},
		{
			name: "storage failure is internal",
			setup: func(repo *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errDatabase).Once()
			},
			wantErr:  true,
			wantKind: failure.Internal,
		},
		{
			name: "verifier failure is internal",
			setup: func(repo *mockUserRepository, pass *mockPasswordService, _ *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(stored, nil).Once()
				pass.On("Verify", mock.Anything, testPassword, testHash).Return(false, errHasher).Once()
			},
			wantErr:  true,
			wantKind: failure.Internal,
		},
		{
			name: "signing failure is internal",
			setup: func(repo *mockUserRepository, pass *mockPasswordService, tokens *mockTokenService) {
				repo.On("FindByEmail", mock.Anything, testEmail).Return(stored, nil).Once()
				pass.On("Verify", mock.Anything, testPassword, testHash).Return(true, nil).Once()
				tokens.On("GenerateToken", mock.Anything, testUserID).Return("", time.Time{}, errSigner).Once()
			},
			wantErr:  true,
			wantKind: failure.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			pass := new(mockPasswordService)
			tokens := new(mockTokenService)
			tt.setup(repo, pass, tokens)

			uc := app.NewAuthUseCase(repo, pass, tokens)
			session, err := uc.Signin(context.Background(), testEmail, testPassword)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, session)
				kind, ok := failure.KindOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, kind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, session.Token)
				assert.Equal(t, testUserID, session.UserID)
				assert.Equal(t, expiresAt, session.ExpiresAt)
			}

			repo.AssertExpectations(t)
			pass.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestSignin_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	unknownRepo := new(mockUserRepository)
	unknownRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound)

	wrongRepo := new(mockUserRepository)
	wrongRepo.On("FindByEmail", mock.Anything, testEmail).
		Return(&entities.User{ID: testUserID, PasswordHash: testHash}, nil)
	wrongPass := new(mockPasswordService)
	wrongPass.On("Verify", mock.Anything, testPassword, testHash).Return(false, nil)

	unknownPass := new(mockPasswordService)
	unknownPass.On("Hash", mock.Anything, mock.Anything).Return(dummyHash, nil)
	unknownPass.On("Verify", mock.Anything, testPassword, dummyHash).Return(false, nil)

	_, errUnknown := app.NewAuthUseCase(unknownRepo, unknownPass, new(mockTokenService)).
		Signin(context.Background(), testEmail, testPassword)
	_, errWrong := app.NewAuthUseCase(wrongRepo, wrongPass, new(mockTokenService)).
		Signin(context.Background(), testEmail, testPassword)

	f1, ok := failure.From(errUnknown)
	require.True(t, ok)
	f2, ok := failure.From(errWrong)
	require.True(t, ok)
	assert.Equal(t, f1.Kind, f2.Kind)
	assert.Equal(t, f1.Message, f2.Message)
	assert.Equal(t, app.MsgInvalidCredentials, f1.Message)
}

func TestSignin_UnknownEmailSpendsOneComparison(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Twice()

	pass := new(mockPasswordService)
	pass.On("Hash", mock.Anything, mock.Anything).Return(dummyHash, nil).Once()
	pass.On("Verify", mock.Anything, testPassword, dummyHash).Return(false, nil).Twice()

	uc := app.NewAuthUseCase(repo, pass, new(mockTokenService))
	for range 2 {
		_, err := uc.Signin(context.Background(), testEmail, testPassword)
		kind, ok := failure.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, failure.Unauthorized, kind)
	}

	repo.AssertExpectations(t)
	pass.AssertExpectations(t)
}

func TestSignin_DummyHashFailureStillUnauthorized(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()

	pass := new(mockPasswordService)
	pass.On("Hash", mock.Anything, mock.Anything).Return("", errHasher).Once()

	_, err := app.NewAuthUseCase(repo, pass, new(mockTokenService)).
		Signin(context.Background(), testEmail, testPassword)

	kind, ok := failure.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, failure.Unauthorized, kind)
	pass.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}
