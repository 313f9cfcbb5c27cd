// Package postgres реализует хранилище пользователей и карточек на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/ports/repositories"
	"mesto/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которое используют репозитории.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

const userColumns = `id, name, about, avatar, email, password_hash, created_at, updated_at`

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.About,
		&user.Avatar,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	if err := user.Validate(); err != nil {
		log.Debug(ctx, "user rejected by schema", zap.Error(err))
		return nil, rejected(err)
	}

	query := `
        INSERT INTO users (name, about, avatar, email, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Name,
		user.About,
		user.Avatar,
		user.Email,
		user.PasswordHash,
	))
	if err != nil {
		err = translate(err)
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			log.Debug(ctx, "duplicate email", zap.String("email", user.Email))
			return nil, err
		}
		if errors.Is(err, repositories.ErrInvalidRecord) {
			log.Debug(ctx, "user rejected by storage constraint", zap.Error(err))
			return nil, err
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, method, query, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("key", arg))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", zap.Error(err))
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return user, nil
}

// List возвращает всех пользователей в порядке регистрации.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateProfile обновляет имя и описание пользователя.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, about string) (*entities.User, error) {
	if err := entities.ValidateProfile(name, about); err != nil {
		return nil, rejected(err)
	}

	query := `
        UPDATE users
        SET name = $2, about = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	return r.update(ctx, "UpdateProfile", query, id, name, about)
}

// UpdateAvatar обновляет ссылку на аватар пользователя.
func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) (*entities.User, error) {
	if err := entities.ValidateAvatar(avatar); err != nil {
		return nil, rejected(err)
	}

	query := `
        UPDATE users
        SET avatar = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	return r.update(ctx, "UpdateAvatar", query, id, avatar)
}

func (r *UserRepository) update(ctx context.Context, method, query string, args ...interface{}) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update")
			return nil, entities.ErrUserNotFound
		}
		err = translate(err)
		if errors.Is(err, repositories.ErrInvalidRecord) {
			return nil, err
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}
