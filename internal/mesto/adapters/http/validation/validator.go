// Package validation проверяет заголовки, параметры пути и тело запроса
// по декларативным наборам правил до вызова обработчика.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v3"

	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/domain/failure"
)

// Part - часть запроса, к которой относится схема.
type Part string

// Проверяемые части запроса в порядке проверки.
const (
	PartHeaders Part = "headers"
	PartParams  Part = "params"
	PartBody    Part = "body"
)

// Сообщения о нарушениях, которые формирует сам валидатор.
const (
	MsgNotObject = "must be a JSON object"
	msgInternal  = "validating request"
)

// Schema - правила для одной части запроса. Строгая схема отклоняет ключи,
// для которых нет правил.
type Schema struct {
	rules  []*ozzo.KeyRules
	strict bool
}

// Strict создает схему, запрещающую неизвестные ключи.
func Strict(rules ...*ozzo.KeyRules) *Schema {
	return &Schema{rules: rules, strict: true}
}

// Lenient создает схему, допускающую неизвестные ключи.
func Lenient(rules ...*ozzo.KeyRules) *Schema {
	return &Schema{rules: rules}
}

func (s *Schema) validate(values map[string]any) error {
	rule := ozzo.Map(s.rules...)
	if !s.strict {
		rule = rule.AllowExtraKeys()
	}
	return ozzo.Validate(values, rule)
}

// Request - извлеченные из запроса значения. Body равен nil, если тело
// не является JSON объектом.
type Request struct {
	Headers map[string]any
	Params  map[string]any
	Body    map[string]any
}

// RuleSet - неизменяемый набор правил маршрута. Пустая схема части
// означает, что часть не проверяется.
type RuleSet struct {
	Name    string
	Headers *Schema
	Params  *Schema
	Body    *Schema
}

// Check проверяет запрос и собирает все нарушения во всех частях в один
// BadRequest.
func (rs RuleSet) Check(req Request) error {
	var violations []string

	parts := []struct {
		part   Part
		schema *Schema
		values map[string]any
	}{
		{PartHeaders, rs.Headers, req.Headers},
		{PartParams, rs.Params, req.Params},
		{PartBody, rs.Body, req.Body},
	}

	for _, p := range parts {
		if p.schema == nil {
			continue
		}
		if p.values == nil {
			violations = append(violations, fmt.Sprintf("%s: %s", p.part, MsgNotObject))
			continue
		}

		err := p.schema.validate(p.values)
		if err == nil {
			continue
		}

		var internal ozzo.InternalError
		if errors.As(err, &internal) {
			return failure.NewInternal(msgInternal, err)
		}
		violations = append(violations, describe(p.part, err)...)
	}

	if len(violations) > 0 {
		return failure.NewBadRequest(strings.Join(violations, "; "))
	}
	return nil
}

// Stage возвращает стадию конвейера, проверяющую запрос по набору правил.
func (rs RuleSet) Stage() pipeline.Stage {
	return pipeline.Stage{
		Name:  "validate:" + rs.Name,
		Phase: pipeline.PhaseValidated,
		Run: func(c fiber.Ctx) error {
			return rs.Check(Extract(c, rs.Body != nil))
		},
	}
}

// Extract собирает значения запроса. Заголовки приводятся к нижнему регистру.
func Extract(c fiber.Ctx, withBody bool) Request {
	req := Request{
		Headers: make(map[string]any),
		Params:  make(map[string]any),
	}

	for name, values := range c.GetReqHeaders() {
		if len(values) > 0 {
			req.Headers[strings.ToLower(name)] = values[0]
		}
	}

	for _, name := range c.Route().Params {
		req.Params[name] = c.Params(name)
	}

	if withBody {
		req.Body = decodeBody(c)
	}
	return req
}

// decodeBody разбирает тело как JSON объект. Пустое тело считается пустым объектом.
func decodeBody(c fiber.Ctx) map[string]any {
	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 {
		return map[string]any{}
	}

	var body any
	if err := c.App().Config().JSONDecoder(raw, &body); err != nil {
		return nil
	}
	object, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	return object
}

// describe превращает ошибки ozzo в строки вида "body.name: сообщение".
func describe(part Part, err error) []string {
	var errs ozzo.Errors
	if !errors.As(err, &errs) {
		return []string{fmt.Sprintf("%s: %s", part, err.Error())}
	}

	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, fmt.Sprintf("%s.%s: %s", part, key, errs[key].Error()))
	}
	return out
}

// DecodeBody разбирает тело запроса в out. Тело к этому моменту уже
// проверено стадией валидации, поэтому ошибка разбора означает BadRequest.
func DecodeBody(c fiber.Ctx, out any) error {
	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(raw, out); err != nil {
		return failure.Wrap(failure.BadRequest, fmt.Sprintf("%s: %s", PartBody, MsgNotObject), err)
	}
	return nil
}
