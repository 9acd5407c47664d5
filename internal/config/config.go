package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port             string
	LogLevel         slog.Level
	Language         string
	Timezone         *time.Location
	ProUser          bool
	NotifyGatewayURL string
	Redis            *RedisConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	language := os.Getenv("APP_LANGUAGE")
	if language == "" {
		language = "en"
	}

	loc := time.Local
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
		loc = parsed
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:             port,
		LogLevel:         parseLogLevel(os.Getenv("LOG_LEVEL")),
		Language:         language,
		Timezone:         loc,
		ProUser:          os.Getenv("PRO_USER") == "true",
		NotifyGatewayURL: os.Getenv("NOTIFY_GATEWAY_URL"),
		Redis:            redisConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
