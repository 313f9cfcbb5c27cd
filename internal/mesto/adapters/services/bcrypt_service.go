package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/services"
	svc "mesto/internal/mesto/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
	errMsgWaitingForWorker     = "waiting for hashing worker"
)

// DefaultBcryptCost - стоимость хэширования по умолчанию.
const DefaultBcryptCost = 10

// ServiceBcrypt реализует PasswordService. Вычисления bcrypt выполняются
// в отдельных горутинах, число одновременных вычислений ограничено.
type ServiceBcrypt struct {
	cost    int
	workers *semaphore.Weighted
}

// NewBcrypt создает сервис bcrypt. workers <= 0 означает GOMAXPROCS.
func NewBcrypt(cost, workers int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ServiceBcrypt{
		cost:    cost,
		workers: semaphore.NewWeighted(int64(workers)),
	}
}

// Hash хэширует пароль со случайной солью.
func (s *ServiceBcrypt) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}
	if len(password) > entities.MaxPasswordBytes {
		return "", services.ErrPasswordTooLong
	}

	hashed, err := run(ctx, s.workers, func() ([]byte, error) {
		return bcrypt.GenerateFromPassword([]byte(password), s.cost)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем за постоянное время.
func (s *ServiceBcrypt) Verify(ctx context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, services.ErrInvalidPassword
	}

	_, err := run(ctx, s.workers, func() ([]byte, error) {
		return nil, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	})
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}
	return true, nil
}

type result struct {
	value []byte
	err   error
}

// run выполняет fn в пуле и возвращает управление при отмене ctx,
// не дожидаясь окончания вычисления.
func run(ctx context.Context, workers *semaphore.Weighted, fn func() ([]byte, error)) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := workers.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", errMsgWaitingForWorker, err)
	}

	done := make(chan result, 1)
	go func() {
		defer workers.Release(1)
		value, err := fn()
		done <- result{value: value, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
