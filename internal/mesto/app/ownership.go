package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/ports/repositories"
	"mesto/pkg/logger"
)

const (
	msgOwnershipDenied = "subject does not own the card"
	msgErrLoadCard     = "failed to load card for ownership check"
	errCtxLoadingCard  = "loading card"
)

// OwnershipGuard проверяет, что субъект владеет карточкой.
// Сначала проверяется существование, затем владелец.
type OwnershipGuard struct {
	cards repositories.CardRepository
}

// NewOwnershipGuard создает проверку владельца.
func NewOwnershipGuard(cards repositories.CardRepository) *OwnershipGuard {
	return &OwnershipGuard{cards: cards}
}

// Authorize возвращает карточку, если subject ее владелец.
// Отсутствующая карточка дает NotFound, чужая - Forbidden.
func (g *OwnershipGuard) Authorize(ctx context.Context, subject, cardID string) (*entities.Card, error) {
	card, err := g.cards.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, entities.ErrCardNotFound) {
			return nil, failure.Wrap(failure.NotFound, MsgCardNotFound, err)
		}
		logger.Log(ctx).Error(ctx, msgErrLoadCard, zap.Error(err), zap.String("cardID", cardID))
		return nil, failure.NewInternal(errCtxLoadingCard, err)
	}

	if !card.OwnedBy(subject) {
		logger.Log(ctx).Debug(ctx, msgOwnershipDenied,
			zap.String("cardID", cardID), zap.String("subject", subject), zap.String("owner", card.Owner))
		return nil, failure.NewForbidden(MsgForeignCard)
	}
	return card, nil
}
