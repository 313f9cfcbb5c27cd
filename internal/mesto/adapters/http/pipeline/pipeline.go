// Package pipeline описывает обработку запроса как явную последовательность
// стадий. Каждая стадия либо пропускает запрос дальше, либо прерывает его
// ошибкой, которую отрисовывает ErrorHandler приложения.
package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"mesto/pkg/logger"
)

// Константы для логирования.
const (
	LogPhase       = "request phase"
	LogStageFailed = "pipeline stage failed"
)

// Phase - состояние запроса в жизненном цикле.
type Phase string

// Фазы жизненного цикла запроса. Повторной обработки нет: каждый запрос
// проходит путь ровно один раз.
const (
	PhaseReceived      Phase = "received"
	PhaseValidated     Phase = "validated"
	PhaseAuthenticated Phase = "authenticated"
	PhaseAuthorized    Phase = "authorized"
	PhaseHandled       Phase = "handled"
	PhaseSucceeded     Phase = "succeeded"
	PhaseFailed        Phase = "failed"
	PhaseResponded     Phase = "responded"
)

type localsKey int

const (
	phaseKey localsKey = iota
	subjectKey
	requestContextKey
)

// Stage - шаг конвейера. При успехе запрос переходит в фазу Phase.
type Stage struct {
	Name  string
	Phase Phase
	Run   func(c fiber.Ctx) error
}

// Handler - прикладной обработчик. Возвращаемое значение отдается клиенту
// как JSON со статусом 200.
type Handler func(c fiber.Ctx) (any, error)

// Pipeline - упорядоченный набор стадий перед обработчиком.
type Pipeline struct {
	stages []Stage
}

// New создает конвейер из стадий в заданном порядке.
func New(stages ...Stage) Pipeline {
	return Pipeline{stages: slices.Clone(stages)}
}

// With возвращает новый конвейер с дополнительными стадиями в конце.
// Исходный конвейер не меняется.
func (p Pipeline) With(stages ...Stage) Pipeline {
	return Pipeline{stages: append(slices.Clone(p.stages), stages...)}
}

// Stages возвращает копию списка стадий.
func (p Pipeline) Stages() []Stage {
	return slices.Clone(p.stages)
}

// Handle собирает fiber обработчик: стадии по порядку, затем handler.
// Первая ошибка прерывает выполнение.
func (p Pipeline) Handle(handler Handler) fiber.Handler {
	stages := slices.Clone(p.stages)

	return func(c fiber.Ctx) error {
		Advance(c, PhaseReceived)

		for _, stage := range stages {
			if err := stage.Run(c); err != nil {
				ctx := RequestContext(c)
				logger.Log(ctx).Debug(ctx, LogStageFailed, zap.String("stage", stage.Name), zap.Error(err))
				Advance(c, PhaseFailed)
				return err
			}
			Advance(c, stage.Phase)
		}

		result, err := handler(c)
		if err != nil {
			Advance(c, PhaseFailed)
			return err
		}
		Advance(c, PhaseHandled)
		Advance(c, PhaseSucceeded)

		if err := c.Status(fiber.StatusOK).JSON(result); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		Advance(c, PhaseResponded)
		return nil
	}
}

// Advance переводит запрос в фазу phase.
func Advance(c fiber.Ctx, phase Phase) {
	c.Locals(phaseKey, phase)
	ctx := RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogPhase, zap.String("phase", string(phase)), zap.String("path", c.Path()))
}

// PhaseOf возвращает текущую фазу запроса.
func PhaseOf(c fiber.Ctx) Phase {
	phase, _ := c.Locals(phaseKey).(Phase)
	return phase
}

// SetSubject сохраняет аутентифицированного субъекта запроса.
func SetSubject(c fiber.Ctx, subject string) {
	c.Locals(subjectKey, subject)
}

// SubjectFrom возвращает аутентифицированного субъекта запроса.
func SubjectFrom(c fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(subjectKey).(string)
	return subject, ok && subject != ""
}

// SetRequestContext сохраняет контекст запроса с logger и request id.
func SetRequestContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(requestContextKey, ctx)
}

// RequestContext возвращает контекст запроса, сохраненный SetRequestContext,
// или контекст fiber, если его нет.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(requestContextKey).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
