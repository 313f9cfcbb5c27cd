package repositories

import (
	"context"

	"mesto/internal/mesto/domain/entities"
)

// CardRepository определяет операции хранения карточек.
// AddLike и RemoveLike атомарны на стороне хранилища и идемпотентны.
type CardRepository interface {
	Create(ctx context.Context, card *entities.Card) (*entities.Card, error)

	FindByID(ctx context.Context, id string) (*entities.Card, error)

	List(ctx context.Context) ([]*entities.Card, error)

	Delete(ctx context.Context, id string) (*entities.Card, error)

	AddLike(ctx context.Context, cardID, userID string) (*entities.Card, error)

	RemoveLike(ctx context.Context, cardID, userID string) (*entities.Card, error)
}
