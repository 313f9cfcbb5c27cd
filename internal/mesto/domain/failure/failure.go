// Package failure описывает типизированные отказы, проходящие через конвейер
// обработки запроса. Каждый вид отказа привязан к одному HTTP статусу.
package failure

import (
	"errors"
	"net/http"
)

// Kind - вид отказа.
type Kind int

// Виды отказов. Нулевое значение соответствует внутренней ошибке.
const (
	Internal Kind = iota
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	Conflict
)

// Status возвращает HTTP статус, связанный с видом отказа.
func (k Kind) Status() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error - отказ определенного вида с сообщением для клиента.
// Cause хранит исходную ошибку и клиенту не передается.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает отказы по виду, чтобы работал errors.Is(err, &Error{Kind: NotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
	}
	return false
}

// New создает отказ без причины.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap создает отказ, оборачивающий причину.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NewBadRequest - некорректные входные данные.
func NewBadRequest(message string) *Error { return New(BadRequest, message) }

// NewUnauthorized - отсутствующие или недействительные учетные данные.
func NewUnauthorized(message string) *Error { return New(Unauthorized, message) }

// NewForbidden - действие запрещено аутентифицированному субъекту.
func NewForbidden(message string) *Error { return New(Forbidden, message) }

// NewNotFound - ресурс или маршрут отсутствует.
func NewNotFound(message string) *Error { return New(NotFound, message) }

// NewConflict - нарушение уникальности.
func NewConflict(message string) *Error { return New(Conflict, message) }

// NewInternal - непредвиденная ошибка.
func NewInternal(message string, cause error) *Error { return Wrap(Internal, message, cause) }

// From извлекает первый типизированный отказ из цепочки ошибок.
func From(err error) (*Error, bool) {
	var f *Error
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf возвращает вид отказа; для нетипизированных ошибок - Internal и false.
func KindOf(err error) (Kind, bool) {
	if f, ok := From(err); ok {
		return f.Kind, true
	}
	return Internal, false
}
