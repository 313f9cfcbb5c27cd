// Package db предоставляет функционал для работы с базой данных сервиса mesto.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"mesto/internal/mesto/config"
	"mesto/pkg/db/postgres"
	"mesto/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing mesto database"
	LogDBInitialized     = "mesto database initialized successfully"
	LogMigrationStarting = "starting database migrations for mesto service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply mesto database migrations"
	ErrDBConnection      = "failed to connect to mesto database"
	ErrDBCheckConnection = "error checking the database connection"
)

// Подменяются в тестах.
var (
	migrate = postgres.Migrate
	connect = postgres.New
)

// DB представляет соединение с базой данных сервиса mesto.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_dir", cfg.MigrationsDir))
	if err := migrate(ctx, cfg.GetConnectionURL(), cfg.MigrationsDir); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := connect(ctx, cfg.GetDSN(), postgres.PoolOptions{
		MinConns:       cfg.MinConn,
		MaxConns:       cfg.MaxConn,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) error {
	db.database.Close(ctx)
	return nil
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
