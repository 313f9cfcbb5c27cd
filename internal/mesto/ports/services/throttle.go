package services

import (
	"context"
	"time"
)

// ThrottleDecision - результат проверки лимита запросов.
type ThrottleDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// Throttle считает запросы клиента в окне.
type Throttle interface {
	Allow(ctx context.Context, key string) (ThrottleDecision, error)
}
