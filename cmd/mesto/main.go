package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"mesto/internal/mesto/adapters/cache"
	mestohttp "mesto/internal/mesto/adapters/http"
	"mesto/internal/mesto/adapters/postgres"
	"mesto/internal/mesto/adapters/services"
	"mesto/internal/mesto/app"
	"mesto/internal/mesto/config"
	"mesto/internal/mesto/db"
	svc "mesto/internal/mesto/ports/services"
	"mesto/pkg/db/redis"
	"mesto/pkg/logger"
	"mesto/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "MESTO_LOGGER_MODE"
	EnvLoggerLevel = "MESTO_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateThrottle       = "failed to create request throttle"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrCloseResource        = "failed to close resource"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "mesto service started"
	LogServiceShutdownDone = "mesto service shutdown complete"
	LogInitRepo            = "initializing repositories"
	LogInitThrottle        = "initializing request throttle"
	LogThrottleDisabled    = "request throttle disabled"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	envPath := flag.String("env", ".env", "path to an optional env file")
	flag.Parse()

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, *envPath)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		var (
			redisClient *redis.Client
			throttle    svc.Throttle
		)
		if cfg.Throttle.Enabled {
			log.Info(ctx, LogInitThrottle)
			redisClient, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				closeOnFailure(ctx, log, "database", func() error { return database.Close(ctx) })
				exitCode = 1
				return
			}

			redisThrottle, err := cache.NewRedisThrottle(redisClient.RawClient(), cfg.Throttle.Limit, cfg.Throttle.Window, cfg.Throttle.Prefix)
			if err != nil {
				log.Error(ctx, ErrCreateThrottle, zap.Error(err))
				closeOnFailure(ctx, log, "redis", redisClient.Close)
				closeOnFailure(ctx, log, "database", func() error { return database.Close(ctx) })
				exitCode = 1
				return
			}
			throttle = cache.NewGuardedThrottle(redisThrottle, cache.NewCircuitBreaker("throttle", cache.CircuitBreakerConfig{
				ErrorThreshold: cfg.Throttle.BreakerThreshold,
				Cooldown:       cfg.Throttle.BreakerCooldown,
			}))
		} else {
			log.Info(ctx, LogThrottleDisabled)
		}

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		userRepo := repoFactory.UserRepository()
		cardRepo := repoFactory.CardRepository()

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(
			cfg.JWT.SecretKey,
			cfg.JWT.TokenTTL,
			cfg.JWT.BCryptCost,
			cfg.JWT.GetHashWorkers(),
		)
		tokenService := serviceFactory.TokenService()

		log.Info(ctx, LogInitUseCases)
		guard := app.NewOwnershipGuard(cardRepo)
		deps := mestohttp.Dependencies{
			Auth:     app.NewAuthUseCase(userRepo, serviceFactory.PasswordService(), tokenService),
			Users:    app.NewUserUseCase(userRepo),
			Cards:    app.NewCardUseCase(cardRepo, guard),
			Guard:    guard,
			Tokens:   tokenService,
			Throttle: throttle,
			Logger:   log,
		}

		log.Info(ctx, LogInitHTTPServer)
		server := mestohttp.NewApp(&cfg.HTTP, deps)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks := []shutdown.Hook{
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
			// Закрытие соединений с базой.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				return database.Close(ctx)
			},
		}
		if redisClient != nil {
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			})
		}

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// closeOnFailure освобождает ресурс на аварийном пути запуска.
func closeOnFailure(ctx context.Context, log *logger.Logger, resource string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Warn(ctx, ErrCloseResource, zap.String("resource", resource), zap.Error(err))
	}
}
