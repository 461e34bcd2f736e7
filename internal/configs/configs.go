package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	AppURL                 string
	AppPort                int
	DatabaseDriver         string
	DatabaseDSN            string
	RedisAddr              string
	RedisKeyPrefix         string
	RateLimit              int
	BodyLimit              string
	StaticDir              string
	LogLevel               string
	LogEncoding            string
	LogDevelopment         bool
	ShutdownTimeoutSeconds int
}

func Load() (Config, error) {
	var errs []error

	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnvAsInt("APP_PORT", getEnvAsInt("PORT", 3001, &errs), &errs)
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%d", appHost, appPort),
		AppPort:                appPort,
		DatabaseDriver:         getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "task-manager"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60, &errs),
		BodyLimit:              getEnv("BODY_LIMIT", "1M"),
		StaticDir:              getEnv("STATIC_DIR", "./public"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogEncoding:            getEnv("LOG_ENCODING", "json"),
		LogDevelopment:         getEnvAsBool("LOG_DEVELOPMENT", false, &errs),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20, &errs),
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return errors.New("APP_PORT must be a valid TCP port")
	}
	switch cfg.DatabaseDriver {
	case DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN must not be empty")
		}
	case DriverRedis:
		if cfg.RedisKeyPrefix == "" {
			return errors.New("REDIS_KEY_PREFIX must not be empty")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverRedis, cfg.DatabaseDriver)
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.BodyLimit == "" {
		return errors.New("BODY_LIMIT must not be empty")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int, errs *[]error) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid integer value for %s", key))
			return defaultVal
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool, errs *[]error) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid boolean value for %s", key))
			return defaultVal
		}
		return b
	}
	return defaultVal
}
