package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/ports/repositories"
	"mesto/pkg/logger"
)

// likesColumn собирает идентификаторы лайкнувших в порядке постановки лайков.
const likesColumn = `COALESCE(
            (SELECT array_agg(l.user_id ORDER BY l.created_at, l.user_id) FROM card_likes l WHERE l.card_id = c.id),
            '{}'::varchar[]
        )`

const cardSelect = `
        SELECT c.id, c.name, c.link, c.owner_id, c.created_at, ` + likesColumn + `
        FROM cards c`

// CardRepository реализует интерфейс repositories.CardRepository для работы с Postgres.
// Лайки хранятся в card_likes с первичным ключом (card_id, user_id), что дает
// семантику множества без чтения и записи массива целиком.
type CardRepository struct {
	pool PgxPoolInterface
}

// NewCardRepository создает новый экземпляр репозитория карточек.
func NewCardRepository(pool PgxPoolInterface) repositories.CardRepository {
	return &CardRepository{pool: pool}
}

func scanCard(row pgx.Row) (*entities.Card, error) {
	var card entities.Card
	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.Link,
		&card.Owner,
		&card.CreatedAt,
		&card.Likes,
	)
	if err != nil {
		return nil, err
	}
	if card.Likes == nil {
		card.Likes = []string{}
	}
	return &card, nil
}

// Create создает карточку.
func (r *CardRepository) Create(ctx context.Context, card *entities.Card) (*entities.Card, error) {
	log := logger.Log(ctx).With(zap.String("repository", "card"), zap.String("method", "Create"))

	if err := card.Validate(); err != nil {
		log.Debug(ctx, "card rejected by schema", zap.Error(err))
		return nil, rejected(err)
	}

	query := `
        INSERT INTO cards (name, link, owner_id)
        VALUES ($1, $2, $3)
        RETURNING id, name, link, owner_id, created_at`

	var created entities.Card
	err := r.pool.QueryRow(ctx, query, card.Name, card.Link, card.Owner).Scan(
		&created.ID,
		&created.Name,
		&created.Link,
		&created.Owner,
		&created.CreatedAt,
	)
	if err != nil {
		err = translate(err)
		if errors.Is(err, repositories.ErrInvalidRecord) {
			return nil, err
		}
		log.Error(ctx, "error creating card", zap.Error(err))
		return nil, fmt.Errorf("error creating card: %w", err)
	}

	created.Likes = []string{}
	return &created, nil
}

// FindByID находит карточку по ID вместе с лайками.
func (r *CardRepository) FindByID(ctx context.Context, id string) (*entities.Card, error) {
	log := logger.Log(ctx).With(zap.String("repository", "card"), zap.String("method", "FindByID"))

	card, err := scanCard(r.pool.QueryRow(ctx, cardSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "card not found", zap.String("id", id))
			return nil, entities.ErrCardNotFound
		}
		log.Error(ctx, "error finding card by id", zap.Error(err))
		return nil, fmt.Errorf("error querying card by id: %w", err)
	}
	return card, nil
}

// List возвращает все карточки в порядке создания.
func (r *CardRepository) List(ctx context.Context) ([]*entities.Card, error) {
	log := logger.Log(ctx).With(zap.String("repository", "card"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, cardSelect+` ORDER BY c.created_at, c.id`)
	if err != nil {
		log.Error(ctx, "error listing cards", zap.Error(err))
		return nil, fmt.Errorf("error listing cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*entities.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error(ctx, "error scanning card", zap.Error(err))
			return nil, fmt.Errorf("error scanning card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating cards", zap.Error(err))
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return cards, nil
}

// Delete удаляет карточку и возвращает ее состояние до удаления.
func (r *CardRepository) Delete(ctx context.Context, id string) (*entities.Card, error) {
	log := logger.Log(ctx).With(zap.String("repository", "card"), zap.String("method", "Delete"))

	query := `
        WITH c AS (
            DELETE FROM cards WHERE id = $1
            RETURNING id, name, link, owner_id, created_at
        )
        SELECT c.id, c.name, c.link, c.owner_id, c.created_at, ` + likesColumn + `
        FROM c`

	card, err := scanCard(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "card already deleted", zap.String("id", id))
			return nil, entities.ErrCardNotFound
		}
		log.Error(ctx, "error deleting card", zap.Error(err))
		return nil, fmt.Errorf("error deleting card: %w", err)
	}
	return card, nil
}

// AddLike добавляет лайк. Повторный лайк того же пользователя ничего не меняет.
func (r *CardRepository) AddLike(ctx context.Context, cardID, userID string) (*entities.Card, error) {
	query := `
        INSERT INTO card_likes (card_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (card_id, user_id) DO NOTHING`

	return r.changeLikes(ctx, "AddLike", query, cardID, userID)
}

// RemoveLike убирает лайк пользователя, если он был.
func (r *CardRepository) RemoveLike(ctx context.Context, cardID, userID string) (*entities.Card, error) {
	query := `DELETE FROM card_likes WHERE card_id = $1 AND user_id = $2`

	return r.changeLikes(ctx, "RemoveLike", query, cardID, userID)
}

func (r *CardRepository) changeLikes(ctx context.Context, method, query, cardID, userID string) (*entities.Card, error) {
	log := logger.Log(ctx).With(zap.String("repository", "card"), zap.String("method", method))

	if _, err := r.pool.Exec(ctx, query, cardID, userID); err != nil {
		err = translate(err)
		if errors.Is(err, entities.ErrCardNotFound) || errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, "like target missing", zap.String("cardID", cardID), zap.Error(err))
			return nil, err
		}
		log.Error(ctx, "error changing likes", zap.Error(err))
		return nil, fmt.Errorf("error changing likes: %w", err)
	}

	return r.FindByID(ctx, cardID)
}
