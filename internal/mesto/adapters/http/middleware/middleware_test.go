package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesto/internal/mesto/adapters/http/errorhandler"
	"mesto/internal/mesto/adapters/http/middleware"
	"mesto/internal/mesto/adapters/http/pipeline"
	svc "mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

const subjectID = "5f8d0d55b54764421b7156c3"

type fakeTokens struct {
	valid map[string]string
}

func (f fakeTokens) GenerateToken(context.Context, string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not used")
}

func (f fakeTokens) ValidateToken(_ context.Context, token string) (string, error) {
	if subject, ok := f.valid[token]; ok {
		return subject, nil
	}
	return "", errors.New("invalid token")
}

type fakeThrottle struct {
	decision svc.ThrottleDecision
	err      error
	keys     []string
}

func (f *fakeThrottle) Allow(_ context.Context, key string) (svc.ThrottleDecision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.New()})
	app.Use(middleware.NewLoggerMiddleware(logger.NewNop()))
	return app
}

func readBody(t *testing.T, resp io.Reader) string {
	t.Helper()
	body, err := io.ReadAll(resp)
	require.NoError(t, err)
	return string(body)
}

func TestAuthenticate(t *testing.T) {
	app := newApp()
	p := pipeline.New(middleware.Authenticate(fakeTokens{valid: map[string]string{"good": subjectID}}))
	app.Get("/me", p.Handle(func(c fiber.Ctx) (any, error) {
		subject, _ := pipeline.SubjectFrom(c)
		return fiber.Map{"subject": subject}, nil
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"нет заголовка", "", fiber.StatusUnauthorized, `{"message":"authorization required"}`},
		{"другая схема", "Basic good", fiber.StatusUnauthorized, `{"message":"authorization required"}`},
		{"недействительный токен", "Bearer forged", fiber.StatusUnauthorized, `{"message":"authorization required"}`},
		{"действительный токен", "Bearer good", fiber.StatusOK, `{"subject":"` + subjectID + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, readBody(t, resp.Body))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	app := newApp()
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/panic", func(fiber.Ctx) error {
		panic("database handle is nil")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/panic", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"internal server error"}`, readBody(t, resp.Body))
}

func TestLoggerMiddleware_RequestID(t *testing.T) {
	app := newApp()
	var seen string
	app.Get("/", func(c fiber.Ctx) error {
		seen, _ = logger.GetRequestID(pipeline.RequestContext(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	t.Run("передан клиентом", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))
		assert.Equal(t, "req-42", seen)
	})

	t.Run("сгенерирован", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		id := resp.Header.Get(middleware.HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, seen)
	})
}

func TestThrottleMiddleware(t *testing.T) {
	t.Run("в пределах лимита", func(t *testing.T) {
		throttle := &fakeThrottle{decision: svc.ThrottleDecision{Allowed: true, Limit: 10, Remaining: 9}}
		app := newApp()
		app.Use(middleware.NewThrottleMiddleware(throttle))
		app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "10", resp.Header.Get(middleware.HeaderRateLimit))
		assert.Equal(t, "9", resp.Header.Get(middleware.HeaderRateRemaining))
		assert.Len(t, throttle.keys, 1)
	})

	t.Run("лимит исчерпан", func(t *testing.T) {
		throttle := &fakeThrottle{decision: svc.ThrottleDecision{Limit: 10, ResetIn: 90 * time.Second}}
		app := newApp()
		app.Use(middleware.NewThrottleMiddleware(throttle))
		app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "90", resp.Header.Get(fiber.HeaderRetryAfter))
		assert.JSONEq(t, `{"message":"`+middleware.MsgTooManyRequests+`"}`, readBody(t, resp.Body))
	})

	t.Run("счетчик недоступен", func(t *testing.T) {
		throttle := &fakeThrottle{err: errors.New("connection refused")}
		app := newApp()
		app.Use(middleware.NewThrottleMiddleware(throttle))
		app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Empty(t, resp.Header.Get(middleware.HeaderRateLimit))
	})
}
