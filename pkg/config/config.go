package config

import "time"

// Config holds runtime configuration for the pizza delivery bot.
type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	Server    ServerConfig    `mapstructure:"server"`
	Bot       BotConfig       `mapstructure:"bot"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Commerce  CommerceConfig  `mapstructure:"commerce"`
	Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
	Delivery  DeliveryConfig  `mapstructure:"delivery"`
	I18n      I18nConfig      `mapstructure:"i18n"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
}

// ServerConfig configures the auxiliary HTTP listener (health, metrics).
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BotConfig configures the Telegram gateway.
type BotConfig struct {
	Token                string        `mapstructure:"token" validate:"required"`
	PollTimeout          time.Duration `mapstructure:"poll_timeout"`
	PaymentProviderToken string        `mapstructure:"payment_provider_token" validate:"required"`
	Currency             string        `mapstructure:"currency"`
}

// RedisConfig configures the session store connection.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// CommerceConfig configures the commerce backend client.
type CommerceConfig struct {
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
	FlowSlug     string `mapstructure:"flow_slug"`
}

// GeocoderConfig configures the geocoding client.
type GeocoderConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key" validate:"required"`
}

// DeliveryConfig configures courier dispatch behavior.
type DeliveryConfig struct {
	FollowUpDelay time.Duration `mapstructure:"followup_delay"`
}

// I18nConfig configures message catalogs.
type I18nConfig struct {
	Dir         string `mapstructure:"dir"`
	DefaultLang string `mapstructure:"default_lang"`
}

// RateLimitConfig configures per-user throttling of inbound events.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}
