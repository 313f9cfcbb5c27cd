package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - пробный запрос после паузы.
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// Константы для логирования.
const (
	LogCircuitTrip   = "circuit breaker tripped"
	LogCircuitReset  = "circuit breaker reset"
	LogCircuitProbe  = "circuit breaker allowing probe"
	LogCircuitReject = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, пока Circuit Breaker открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число ошибок подряд до перехода в открытое состояние.
	ErrorThreshold int
	// Cooldown - пауза до пробного запроса.
	Cooldown time.Duration
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold: 5,
		Cooldown:       10 * time.Second,
	}
}

// CircuitBreaker перестает обращаться к зависимости после серии ошибок.
// В полуоткрытом состоянии пропускается ровно один пробный запрос.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	probing  bool
	openedAt time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	if config.ErrorThreshold <= 0 {
		config.ErrorThreshold = DefaultCircuitBreakerConfig().ErrorThreshold
	}
	if config.Cooldown <= 0 {
		config.Cooldown = DefaultCircuitBreakerConfig().Cooldown
	}
	return &CircuitBreaker{
		name:   name,
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
}

// Execute выполняет fn, если Circuit Breaker его пропускает.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allow(ctx) {
		return ErrCircuitOpen
	}
	err := fn()
	cb.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("circuit_breaker", cb.name))

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.config.Cooldown {
			log.Debug(ctx, LogCircuitReject)
			return false
		}
		cb.state = StateHalfOpen
		cb.probing = true
		log.Info(ctx, LogCircuitProbe)
		return true
	default:
		if cb.probing {
			log.Debug(ctx, LogCircuitReject)
			return false
		}
		cb.probing = true
		return true
	}
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("circuit_breaker", cb.name))
	cb.probing = false

	if err == nil {
		if cb.state != StateClosed {
			log.Info(ctx, LogCircuitReset)
		}
		cb.state = StateClosed
		cb.failures = 0
		return
	}

	cb.failures++
	if cb.state == StateHalfOpen || cb.failures >= cb.config.ErrorThreshold {
		if cb.state != StateOpen {
			log.Warn(ctx, LogCircuitTrip, zap.Int("failures", cb.failures), zap.Error(err))
		}
		cb.state = StateOpen
		cb.openedAt = cb.now()
	}
}

// GuardedThrottle защищает ограничитель Circuit Breaker: пока Redis
// недоступен, Allow сразу возвращает ErrCircuitOpen и не ждет таймаутов.
type GuardedThrottle struct {
	next    services.Throttle
	breaker *CircuitBreaker
}

// NewGuardedThrottle оборачивает next в Circuit Breaker.
func NewGuardedThrottle(next services.Throttle, breaker *CircuitBreaker) services.Throttle {
	return &GuardedThrottle{next: next, breaker: breaker}
}

// Allow делегирует проверку лимита, если Circuit Breaker закрыт.
func (g *GuardedThrottle) Allow(ctx context.Context, key string) (services.ThrottleDecision, error) {
	var decision services.ThrottleDecision
	err := g.breaker.Execute(ctx, func() error {
		var err error
		decision, err = g.next.Allow(ctx, key)
		return err
	})
	return decision, err
}
