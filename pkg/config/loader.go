// Package config provides configuration loading and validation utilities.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from YAML files and environment variables,
// validates it, and returns the resulting Config. The config file is watched
// for changes; reloads are logged, not applied live.
func Load() (*Config, *viper.Viper, error) {
	if err := godotenv.Load(".env.local", ".env"); err != nil {
		// missing env files are fine in containerized deployments
		_ = err
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigFile(fmt.Sprintf("./configs/%s.yaml", env))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = env

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Default().Info("config file changed, restart to apply", slog.String("file", e.Name))
	})
	v.WatchConfig()

	return &cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("bot.poll_timeout", 10*time.Second)
	v.SetDefault("bot.currency", "RUB")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("commerce.base_url", "https://api.moltin.com")
	v.SetDefault("commerce.flow_slug", "pizzeria")
	v.SetDefault("geocoder.base_url", "https://geocode-maps.yandex.ru")
	v.SetDefault("delivery.followup_delay", time.Hour)
	v.SetDefault("i18n.dir", "internal/i18n")
	v.SetDefault("i18n.default_lang", "en")
	v.SetDefault("rate_limit.limit", 20)
	v.SetDefault("rate_limit.window", time.Minute)
}
