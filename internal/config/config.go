package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config keeps runtime settings for the bot.
type Config struct {
	BotToken       string `envconfig:"BOT_TOKEN" required:"true"`
	WebhookURL     string `envconfig:"WEBHOOK_URL" required:"true"`
	ListenAddr     string `envconfig:"LISTEN_ADDR" default:":8080"`
	DatabaseURL    string `envconfig:"DATABASE_URL" default:"todo_bot.db"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// Load reads configuration from environment variables. Missing required
// settings make startup fail.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}
