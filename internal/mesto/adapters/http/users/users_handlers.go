// Package users содержит HTTP обработчики профилей пользователей.
package users

import (
	"github.com/gofiber/fiber/v3"

	"mesto/internal/mesto/adapters/http/dto"
	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/adapters/http/validation"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/ports/api"
)

// ParamUserID - параметр пути с идентификатором пользователя.
const ParamUserID = "userId"

const errNoSubject = "authenticated subject missing"

// Handler содержит HTTP обработчики профилей.
type Handler struct {
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика профилей.
func NewHandler(userUseCase api.UserUseCase) *Handler {
	return &Handler{userUseCase: userUseCase}
}

// List возвращает всех пользователей.
func (h *Handler) List(c fiber.Ctx) (any, error) {
	users, err := h.userUseCase.ListUsers(pipeline.RequestContext(c))
	if err != nil {
		return nil, err
	}
	return dto.NewUserList(users), nil
}

// Me возвращает профиль текущего пользователя.
func (h *Handler) Me(c fiber.Ctx) (any, error) {
	subject, err := subjectOf(c)
	if err != nil {
		return nil, err
	}
	return h.get(c, subject)
}

// ByID возвращает профиль пользователя по идентификатору.
func (h *Handler) ByID(c fiber.Ctx) (any, error) {
	return h.get(c, c.Params(ParamUserID))
}

// UpdateProfile меняет имя и описание текущего пользователя.
func (h *Handler) UpdateProfile(c fiber.Ctx) (any, error) {
	subject, err := subjectOf(c)
	if err != nil {
		return nil, err
	}

	var req dto.UpdateProfileRequest
	if err := validation.DecodeBody(c, &req); err != nil {
		return nil, err
	}

	user, err := h.userUseCase.UpdateProfile(pipeline.RequestContext(c), subject, req.Name, req.About)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateAvatar меняет аватар текущего пользователя.
func (h *Handler) UpdateAvatar(c fiber.Ctx) (any, error) {
	subject, err := subjectOf(c)
	if err != nil {
		return nil, err
	}

	var req dto.UpdateAvatarRequest
	if err := validation.DecodeBody(c, &req); err != nil {
		return nil, err
	}

	user, err := h.userUseCase.UpdateAvatar(pipeline.RequestContext(c), subject, req.Avatar)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (h *Handler) get(c fiber.Ctx, userID string) (any, error) {
	user, err := h.userUseCase.GetUser(pipeline.RequestContext(c), userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// subjectOf возвращает субъекта запроса. Его отсутствие на защищенном
// маршруте означает ошибку сборки конвейера.
func subjectOf(c fiber.Ctx) (string, error) {
	subject, ok := pipeline.SubjectFrom(c)
	if !ok {
		return "", failure.NewInternal(errNoSubject, nil)
	}
	return subject, nil
}
