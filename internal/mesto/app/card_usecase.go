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
	msgCardCreated      = "card created"
	msgCardDeleted      = "card deleted"
	msgCardRejected     = "card rejected by storage schema"
	msgLikeAdded        = "like added"
	msgLikeRemoved      = "like removed"
	msgErrListCards     = "failed to list cards"
	msgErrCreateCard    = "failed to create card"
	msgErrDeleteCard    = "failed to delete card"
	msgErrUpdateLikes   = "failed to update likes"
	errCtxListingCards  = "listing cards"
	errCtxCreatingCard  = "creating card"
	errCtxDeletingCard  = "deleting card"
	errCtxUpdatingLikes = "updating likes"
)

// CardUseCaseImpl реализует CardUseCase.
type CardUseCaseImpl struct {
	cardRepo repositories.CardRepository
	guard    *OwnershipGuard
}

// NewCardUseCase создает сервис карточек.
func NewCardUseCase(cardRepo repositories.CardRepository, guard *OwnershipGuard) api.CardUseCase {
	return &CardUseCaseImpl{cardRepo: cardRepo, guard: guard}
}

func (c *CardUseCaseImpl) ListCards(ctx context.Context) ([]*entities.Card, error) {
	cards, err := c.cardRepo.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListCards, zap.Error(err))
		return nil, failure.NewInternal(errCtxListingCards, err)
	}
	return cards, nil
}

// CreateCard создает карточку, владельцем которой становится userID.
func (c *CardUseCaseImpl) CreateCard(ctx context.Context, userID, name, link string) (*entities.Card, error) {
	card, err := c.cardRepo.Create(ctx, entities.NewCard(name, link, userID))
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidRecord) {
			logger.Log(ctx).Debug(ctx, msgCardRejected, zap.Error(err))
			return nil, failure.Wrap(failure.BadRequest, MsgInvalidCardData, err)
		}
		logger.Log(ctx).Error(ctx, msgErrCreateCard, zap.Error(err), zap.String("userID", userID))
		return nil, failure.NewInternal(errCtxCreatingCard, err)
	}
	logger.Log(ctx).Info(ctx, msgCardCreated, zap.String("cardID", card.ID), zap.String("userID", userID))
	return card, nil
}

// DeleteCard удаляет карточку после проверки владельца и возвращает удаленную запись.
func (c *CardUseCaseImpl) DeleteCard(ctx context.Context, userID, cardID string) (*entities.Card, error) {
	if _, err := c.guard.Authorize(ctx, userID, cardID); err != nil {
		return nil, err
	}

	deleted, err := c.cardRepo.Delete(ctx, cardID)
	if err != nil {
		if errors.Is(err, entities.ErrCardNotFound) {
			return nil, failure.Wrap(failure.NotFound, MsgCardNotFound, err)
		}
		logger.Log(ctx).Error(ctx, msgErrDeleteCard, zap.Error(err), zap.String("cardID", cardID))
		return nil, failure.NewInternal(errCtxDeletingCard, err)
	}
	logger.Log(ctx).Info(ctx, msgCardDeleted, zap.String("cardID", cardID), zap.String("userID", userID))
	return deleted, nil
}

// LikeCard добавляет userID в лайки карточки. Повторный лайк ничего не меняет.
func (c *CardUseCaseImpl) LikeCard(ctx context.Context, userID, cardID string) (*entities.Card, error) {
	card, err := c.cardRepo.AddLike(ctx, cardID, userID)
	if err != nil {
		return nil, c.likeFailure(ctx, cardID, err)
	}
	logger.Log(ctx).Debug(ctx, msgLikeAdded, zap.String("cardID", cardID), zap.String("userID", userID))
	return card, nil
}

// UnlikeCard убирает userID из лайков карточки.
func (c *CardUseCaseImpl) UnlikeCard(ctx context.Context, userID, cardID string) (*entities.Card, error) {
	card, err := c.cardRepo.RemoveLike(ctx, cardID, userID)
	if err != nil {
		return nil, c.likeFailure(ctx, cardID, err)
	}
	logger.Log(ctx).Debug(ctx, msgLikeRemoved, zap.String("cardID", cardID), zap.String("userID", userID))
	return card, nil
}

func (c *CardUseCaseImpl) likeFailure(ctx context.Context, cardID string, err error) error {
	if errors.Is(err, entities.ErrCardNotFound) {
		return failure.Wrap(failure.NotFound, MsgCardNotFound, err)
	}
	logger.Log(ctx).Error(ctx, msgErrUpdateLikes, zap.Error(err), zap.String("cardID", cardID))
	return failure.NewInternal(errCtxUpdatingLikes, err)
}
