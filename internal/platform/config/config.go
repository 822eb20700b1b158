// Package config loads and validates the process configuration from the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Transport selection values.
const (
	TransportTwitch   = "twitch"
	TransportTelegram = "telegram"
)

// Selection policy values.
const (
	SelectionSequential = "sequential"
	SelectionRandom     = "random"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	Transport string `env:"TRANSPORT" default:"twitch"`

	TwitchChannel   string `env:"TWITCH_CHANNEL"`
	TwitchNick      string `env:"TWITCH_NICK"`
	TwitchAuthToken string `env:"TWITCH_AUTH_TOKEN"`

	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`

	RedisURL string `env:"REDIS_URL"`

	QuestionDir   string `env:"QUESTION_DIR" default:"questions"`
	Selection     string `env:"SELECTION" default:"sequential"`
	CommandPrefix string `env:"COMMAND_PREFIX" default:"!"`
	DefaultLocale string `env:"DEFAULT_LOCALE" default:"en"`

	QuestionDuration     time.Duration `env:"QUESTION_DURATION" default:"40s"`
	TimeBetweenQuestions time.Duration `env:"TIME_BETWEEN_QUESTIONS" default:"15s"`
	TimeBeforeTip        time.Duration `env:"TIME_BEFORE_TIP" default:"10s"`
	NoAnswerLimit        int           `env:"NO_ANSWER_LIMIT" default:"8"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Transport {
	case TransportTwitch:
		required := map[string]string{
			"TWITCH_CHANNEL":    cfg.TwitchChannel,
			"TWITCH_NICK":       cfg.TwitchNick,
			"TWITCH_AUTH_TOKEN": cfg.TwitchAuthToken,
		}
		for name, value := range required {
			if value == "" {
				return fmt.Errorf("%s is required", name)
			}
		}
	case TransportTelegram:
		if cfg.TelegramToken == "" {
			return errors.New("TELEGRAM_TOKEN is required")
		}
		if cfg.TelegramChatID == 0 {
			return errors.New("TELEGRAM_CHAT_ID is required")
		}
	default:
		return fmt.Errorf("TRANSPORT must be %q or %q, got %q", TransportTwitch, TransportTelegram, cfg.Transport)
	}

	if cfg.RedisURL == "" {
		return errors.New("REDIS_URL is required")
	}

	if cfg.Selection != SelectionSequential && cfg.Selection != SelectionRandom {
		return fmt.Errorf("SELECTION must be %q or %q, got %q", SelectionSequential, SelectionRandom, cfg.Selection)
	}

	return nil
}
