package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"identity-gateway/internal/config"
	"identity-gateway/internal/logger"
	"identity-gateway/internal/redis"
	"identity-gateway/internal/store"
)

type infra struct {
	db    *sql.DB
	redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready")

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready")

	return &infra{
		db:    sqlDB,
		redis: redisClient,
	}, nil
}
