// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	AppEnv        string
	BotUsername   string
	AdminChatID   int64
	APISecret     string
	HTTPPort      string

	// Время простоя, после которого незавершённый диалог сбрасывается.
	SessionTTL time.Duration
	// Пауза между отправками при рассылке (ограничение Telegram API).
	BroadcastDelay time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_APITOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        os.Getenv("ENV"),
		BotUsername:   os.Getenv("BOT_USERNAME"),
		APISecret:     os.Getenv("API_SECRET"),
		HTTPPort:      os.Getenv("PORT"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_APITOKEN не установлен")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL не установлена")
	}

	var err error
	cfg.AdminChatID, err = strconv.ParseInt(os.Getenv("ADMIN_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать ADMIN_CHAT_ID: %w", err)
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	cfg.SessionTTL = durationMinutesFromEnv("SESSION_TTL_MINUTES", 30)
	cfg.BroadcastDelay = durationMillisFromEnv("BROADCAST_DELAY_MS", 50)

	return cfg, nil
}

func durationMinutesFromEnv(key string, def int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(def) * time.Minute
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Предупреждение: некорректное значение %s='%s', используется %d минут.", key, raw, def)
		return time.Duration(def) * time.Minute
	}
	return time.Duration(v) * time.Minute
}

func durationMillisFromEnv(key string, def int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(def) * time.Millisecond
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("Предупреждение: некорректное значение %s='%s', используется %d мс.", key, raw, def)
		return time.Duration(def) * time.Millisecond
	}
	return time.Duration(v) * time.Millisecond
}
