package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/ports/repositories"
)

// Коды ошибок PostgreSQL, которые адаптер переводит в типизированные результаты.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeForeignKeyViolation = "23503"
	codeStringTooLong       = "22001"
	codeNotNullViolation    = "23502"
)

// Ограничения, по которым различаются нарушения внешних ключей.
const (
	constraintCardOwner     = "cards_owner_fkey"
	constraintCardLikesCard = "card_likes_card_fkey"
	constraintCardLikesUser = "card_likes_user_fkey"
)

// translate заменяет коды ошибок драйвера на ошибки репозитория.
// Нераспознанные ошибки возвращаются как есть.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", repositories.ErrDuplicateEmail, pgErr.ConstraintName)
	case codeCheckViolation, codeStringTooLong, codeNotNullViolation:
		return fmt.Errorf("%w: %s", repositories.ErrInvalidRecord, pgErr.Message)
	case codeForeignKeyViolation:
		switch pgErr.ConstraintName {
		case constraintCardLikesCard:
			return entities.ErrCardNotFound
		case constraintCardOwner, constraintCardLikesUser:
			return entities.ErrUserNotFound
		}
	}
	return err
}

// rejected оборачивает ошибку проверки схемы в ErrInvalidRecord.
func rejected(err error) error {
	return fmt.Errorf("%w: %w", repositories.ErrInvalidRecord, err)
}
