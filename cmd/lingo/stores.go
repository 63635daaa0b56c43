package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"lingo/internal/config"
	"lingo/internal/provider"
	"lingo/internal/repository"
	"lingo/internal/repository/redisstore"
	"lingo/internal/repository/sqlstore"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitedb "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store names double as provider names
const (
	storePostgres = "postgres"
	storeSQLite   = "sqlite"
	storeRedis    = "redis"

	defaultSQLitePath = "lingo.db"
)

// buildRegistry registers the file provider, the openai provider when configured
// and the store backing the selected provider. Other stores are never opened.
// A selected store that fails to open is logged and left out, so the supplier
// reports an unknown provider and the widget stays unloaded.
// The returned func closes the backend connection.
func buildRegistry(ctx context.Context, cfg *config.Config, selected string, logger *zap.Logger) (*provider.Registry, func(), error) {
	registry, err := provider.NewRegistry(provider.NewFileProvider(cfg.VocabularyFile))
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {}

	if cfg.OpenAIEnabled() {
		openAI := provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		})
		if err := registry.Register(openAI); err != nil {
			return nil, nil, err
		}
	}

	if !isStore(selected) {
		return registry, closeStore, nil
	}

	repo, closeRepo, err := openStore(ctx, selected, cfg, logger)
	if err != nil {
		logger.Error("Couldn't open vocabulary store",
			zap.String("provider", selected),
			zap.Error(err),
		)
		return registry, closeStore, nil
	}

	if err := registry.Register(provider.NewStoreProvider(selected, repo)); err != nil {
		closeRepo()
		return nil, nil, err
	}
	return registry, closeRepo, nil
}

func isStore(name string) bool {
	switch name {
	case storePostgres, storeSQLite, storeRedis:
		return true
	}
	return false
}

// openStore connects to a named backend and prepares its schema
func openStore(ctx context.Context, name string, cfg *config.Config, logger *zap.Logger) (repository.WordSetRepository, func(), error) {
	switch name {
	case storePostgres:
		if !cfg.PostgresEnabled() {
			return nil, nil, fmt.Errorf("postgres store needs DB_PASSWORD")
		}
		db, err := connectDatabase("postgres", cfg.DSN(), 30, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := runMigrations(db, storePostgres, cfg.MigrationsDir, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Postgres store ready")
		return sqlstore.NewWordSetRepo(db, sqlstore.Postgres), func() { db.Close() }, nil

	case storeSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = defaultSQLitePath
		}
		db, err := connectDatabase("sqlite3", path, 1, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		if err := runMigrations(db, storeSQLite, cfg.MigrationsDir, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("SQLite store ready", zap.String("path", path))
		return sqlstore.NewWordSetRepo(db, sqlstore.SQLite), func() { db.Close() }, nil

	case storeRedis:
		if !cfg.RedisEnabled() {
			return nil, nil, fmt.Errorf("redis store needs REDIS_ADDRESS")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Redis store ready", zap.String("key", cfg.Redis.Key))
		return redisstore.NewWordSetStore(client, cfg.Redis.Key), func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", provider.ErrUnknownProvider, name)
}

// connectDatabase opens a database with retries
func connectDatabase(driverName, dsn string, maxRetries int, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			time.Sleep(retryDelay)
		}

		db, err = sql.Open(driverName, dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.String("driver", driverName),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.String("driver", driverName),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies <dir>/<store> to db
func runMigrations(db *sql.DB, store, dir string, logger *zap.Logger) error {
	var (
		driver database.Driver
		err    error
	)
	switch store {
	case storePostgres:
		driver, err = postgresdb.WithInstance(db, &postgresdb.Config{})
	case storeSQLite:
		driver, err = sqlitedb.WithInstance(db, &sqlitedb.Config{})
	default:
		return fmt.Errorf("no migrations for store %s", store)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+filepath.ToSlash(filepath.Join(dir, store)),
		store,
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply", zap.String("store", store))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully", zap.String("store", store))
	return nil
}
