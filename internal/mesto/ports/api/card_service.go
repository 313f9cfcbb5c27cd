package api

import (
	"context"

	"mesto/internal/mesto/domain/entities"
)

// CardUseCase - операции с карточками. userID - аутентифицированный субъект.
type CardUseCase interface {
	ListCards(ctx context.Context) ([]*entities.Card, error)

	CreateCard(ctx context.Context, userID, name, link string) (*entities.Card, error)

	DeleteCard(ctx context.Context, userID, cardID string) (*entities.Card, error)

	LikeCard(ctx context.Context, userID, cardID string) (*entities.Card, error)

	UnlikeCard(ctx context.Context, userID, cardID string) (*entities.Card, error)
}
