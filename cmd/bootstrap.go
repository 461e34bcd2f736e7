package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	config "task-manager.com/task-manager/internal/configs"
	"task-manager.com/task-manager/internal/logger"
	repository "task-manager.com/task-manager/internal/repositories"
)

// loadConfig reads the dotenv file (if any) and the environment exactly once.
func loadConfig() (config.Config, *zap.Logger, error) {
	envErr := godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New("task-manager", cfg.LogLevel, cfg.LogEncoding, cfg.LogDevelopment)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if envErr != nil {
		if errors.Is(envErr, fs.ErrNotExist) {
			log.Info("env file not found, using environment variables", zap.String("env_file", envFile))
		} else {
			log.Warn("failed to load env file", zap.String("env_file", envFile), zap.Error(envErr))
		}
	}

	return cfg, log, nil
}

// openRepository connects the configured store. Any failure here must stop startup.
func openRepository(ctx context.Context, cfg config.Config, log *zap.Logger) (repository.TaskRepository, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverRedis:
		client, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisTaskRepository(client, cfg.RedisKeyPrefix)
		if err := repo.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		log.Info("connected to redis document store", zap.String("addr", cfg.RedisAddr))
		return repo, closeRedis(client), nil

	default:
		db, err := config.NewSQLite(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := config.Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		log.Info("connected to sqlite", zap.String("dsn", cfg.DatabaseDSN))
		return repository.NewTaskRepository(db), func() { _ = sqlDB.Close() }, nil
	}
}

func closeRedis(client rueidis.Client) func() {
	return func() { client.Close() }
}
