package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// devSessionSecret is the fallback cookie signing key for local development.
// Production deployments must provide their own SESSION_SECRET.
const devSessionSecret = "homehub-dev-session-secret"

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	AuthBaseURL   string `env:"AUTH_BASE_URL" default:"http://localhost:5000"`
	SessionSecret string `env:"SESSION_SECRET" default:"homehub-dev-session-secret"`

	RemindersURL    string `env:"REMINDERS_URL" default:"http://localhost:5001"`
	RemindersSecret string `env:"REMINDERS_SECRET" default:"reminders-dev-secret"`
	CalendarURL     string `env:"CALENDAR_URL" default:"http://localhost:5002"`
	CalendarSecret  string `env:"CALENDAR_SECRET" default:"calendar-dev-secret"`
	NotesURL        string `env:"NOTES_URL" default:"http://localhost:5003"`
	NotesSecret     string `env:"NOTES_SECRET" default:"notes-dev-secret"`
	HabitsURL       string `env:"HABITS_URL" default:"http://localhost:5004"`
	HabitsSecret    string `env:"HABITS_SECRET" default:"habits-dev-secret"`
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
	if cfg.AppEnv == "production" && cfg.SessionSecret == devSessionSecret {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	if cfg.AuthBaseURL == "" {
		return fmt.Errorf("AUTH_BASE_URL is required")
	}
	return nil
}
