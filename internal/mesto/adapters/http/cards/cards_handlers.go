// Package cards содержит HTTP обработчики карточек.
package cards

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"mesto/internal/mesto/adapters/http/dto"
	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/adapters/http/validation"
	"mesto/internal/mesto/app"
	"mesto/internal/mesto/domain/entities"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/ports/api"
)

// ParamCardID - параметр пути с идентификатором карточки.
const ParamCardID = "cardId"

const errNoSubject = "authenticated subject missing"

// Handler содержит HTTP обработчики карточек.
type Handler struct {
	cardUseCase api.CardUseCase
}

// NewHandler создает новый экземпляр обработчика карточек.
func NewHandler(cardUseCase api.CardUseCase) *Handler {
	return &Handler{cardUseCase: cardUseCase}
}

// OwnershipStage возвращает стадию, пропускающую запрос только владельца карточки.
func OwnershipStage(guard *app.OwnershipGuard) pipeline.Stage {
	return pipeline.Stage{
		Name:  "authorize:card-owner",
		Phase: pipeline.PhaseAuthorized,
		Run: func(c fiber.Ctx) error {
			subject, err := subjectOf(c)
			if err != nil {
				return err
			}
			_, err = guard.Authorize(pipeline.RequestContext(c), subject, c.Params(ParamCardID))
			return err
		},
	}
}

// List возвращает все карточки.
func (h *Handler) List(c fiber.Ctx) (any, error) {
	cards, err := h.cardUseCase.ListCards(pipeline.RequestContext(c))
	if err != nil {
		return nil, err
	}
	return dto.NewCardList(cards), nil
}

// Create создает карточку текущего пользователя.
func (h *Handler) Create(c fiber.Ctx) (any, error) {
	subject, err := subjectOf(c)
	if err != nil {
		return nil, err
	}

	var req dto.CreateCardRequest
	if err := validation.DecodeBody(c, &req); err != nil {
		return nil, err
	}

	card, err := h.cardUseCase.CreateCard(pipeline.RequestContext(c), subject, req.Name, req.Link)
	if err != nil {
		return nil, err
	}
	return dto.NewCardResponse(card), nil
}

// Delete удаляет карточку и возвращает ее состояние до удаления.
func (h *Handler) Delete(c fiber.Ctx) (any, error) {
	return h.mutate(c, h.cardUseCase.DeleteCard)
}

// Like ставит лайк карточке.
func (h *Handler) Like(c fiber.Ctx) (any, error) {
	return h.mutate(c, h.cardUseCase.LikeCard)
}

// Unlike снимает лайк с карточки.
func (h *Handler) Unlike(c fiber.Ctx) (any, error) {
	return h.mutate(c, h.cardUseCase.UnlikeCard)
}

type cardAction = func(ctx context.Context, userID, cardID string) (*entities.Card, error)

func (h *Handler) mutate(c fiber.Ctx, action cardAction) (any, error) {
	subject, err := subjectOf(c)
	if err != nil {
		return nil, err
	}

	card, err := action(pipeline.RequestContext(c), subject, c.Params(ParamCardID))
	if err != nil {
		return nil, err
	}
	return dto.NewCardResponse(card), nil
}

func subjectOf(c fiber.Ctx) (string, error) {
	subject, ok := pipeline.SubjectFrom(c)
	if !ok {
		return "", failure.NewInternal(errNoSubject, nil)
	}
	return subject, nil
}
