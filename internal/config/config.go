package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken       string        `envconfig:"BOT_TOKEN" required:"true"`
	DBPath         string        `envconfig:"DB_PATH" default:"./data/suguan.db"`
	ReminderOffset time.Duration `envconfig:"REMINDER_OFFSET" default:"3h"` // lead time before the event
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`     // debug|info|warn|error
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8080"`    // healthz
}

// Load reads environment variables into Config. A .env file in the
// working directory is merged in first, if present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
