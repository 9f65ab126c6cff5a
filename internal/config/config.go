// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/popeskul/lead-messenger/internal/models"
	"github.com/popeskul/lead-messenger/internal/phone"
)

type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Redis      RedisConfig       `mapstructure:"redis"`
	Provider   ProviderConfig    `mapstructure:"provider"`
	Phone      phone.Config      `mapstructure:"phone"`
	Retry      RetryConfig       `mapstructure:"retry"`
	Sequence   SequenceConfig    `mapstructure:"sequence"`
	Queue      QueueConfig       `mapstructure:"queue"`
	Messaging  MessagingConfig   `mapstructure:"messaging"`
	Templates  []models.Template `mapstructure:"templates"`
	Webhook    WebhookConfig     `mapstructure:"webhook"`
	Middleware MiddlewareConfig  `mapstructure:"middleware"`
	Sentry     SentryConfig      `mapstructure:"sentry"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	// Driver "memory" runs on the in-process store instead of Postgres.
	Driver string `mapstructure:"driver"`
	// AutoMigrate applies MigrationsPath on startup.
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// IndexTTLHours bounds how long a provider message id stays resolvable for callbacks.
	IndexTTLHours int `mapstructure:"index_ttl_hours"`
}

type ProviderConfig struct {
	BaseURL             string               `mapstructure:"base_url"`
	PhoneNumberID       string               `mapstructure:"phone_number_id"`
	AccessToken         string               `mapstructure:"access_token"`
	Timeout             int                  `mapstructure:"timeout"`
	Language            string               `mapstructure:"language"`
	RateLimit           float64              `mapstructure:"rate_limit"`
	RateBurst           int                  `mapstructure:"rate_burst"`
	ContactCacheTTL     int                  `mapstructure:"contact_cache_ttl"`
	PermanentErrorCodes []string             `mapstructure:"permanent_error_codes"`
	CircuitBreaker      CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

type RetryConfig struct {
	MaxAttempts       int     `mapstructure:"max_attempts"`
	BaseDelaySeconds  int     `mapstructure:"base_delay_seconds"`
	Multiplier        float64 `mapstructure:"multiplier"`
	Jitter            float64 `mapstructure:"jitter"`
	IntervalSeconds   int     `mapstructure:"interval_seconds"`
	BatchSize         int     `mapstructure:"batch_size"`
	StaleAfterMinutes int     `mapstructure:"stale_after_minutes"`
}

type SequenceConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	BatchSize       int `mapstructure:"batch_size"`
}

type QueueConfig struct {
	Driver          string `mapstructure:"driver"`
	URL             string `mapstructure:"url"`
	Name            string `mapstructure:"name"`
	Workers         int    `mapstructure:"workers"`
	Buffer          int    `mapstructure:"buffer"`
	MaxRedeliveries int    `mapstructure:"max_redeliveries"`
}

type MessagingConfig struct {
	// AutoSendTemplate is dispatched to every new lead when set.
	AutoSendTemplate string `mapstructure:"auto_send_template"`
}

type WebhookConfig struct {
	VerifyToken string `mapstructure:"verify_token"`
	AppSecret   string `mapstructure:"app_secret"`
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.migrations_path", "./migrations")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.index_ttl_hours", 72)
	v.SetDefault("provider.base_url", "https://graph.facebook.com/v19.0")
	v.SetDefault("provider.timeout", 15)
	v.SetDefault("provider.language", "fr")
	v.SetDefault("provider.rate_limit", 20)
	v.SetDefault("provider.rate_burst", 20)
	v.SetDefault("provider.contact_cache_ttl", 3600)
	v.SetDefault("provider.permanent_error_codes", []string{"131026", "131050", "131051"})
	v.SetDefault("provider.circuit_breaker.max_requests", 3)
	v.SetDefault("provider.circuit_breaker.interval", 60)
	v.SetDefault("provider.circuit_breaker.timeout", 60)
	v.SetDefault("provider.circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("provider.circuit_breaker.consecutive_fails", 5)
	v.SetDefault("phone.country_code", "212")
	v.SetDefault("phone.min_digits", 10)
	v.SetDefault("phone.mobile_pattern", `^[5-7][0-9]{8}$`)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay_seconds", 60)
	v.SetDefault("retry.multiplier", 4.0)
	v.SetDefault("retry.jitter", 0.2)
	v.SetDefault("retry.interval_seconds", 30)
	v.SetDefault("retry.batch_size", 50)
	v.SetDefault("retry.stale_after_minutes", 10)
	v.SetDefault("sequence.interval_seconds", 60)
	v.SetDefault("sequence.batch_size", 100)
	v.SetDefault("queue.driver", "memory")
	v.SetDefault("queue.name", "lead-dispatch")
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.buffer", 1000)
	v.SetDefault("queue.max_redeliveries", 5)
	v.SetDefault("middleware.rate_limit", 100)
	v.SetDefault("middleware.rate_limit_burst", 1000)
	v.SetDefault("middleware.enable_cors", true)
	v.SetDefault("middleware.allowed_origins", []string{"*"})
	v.SetDefault("middleware.request_timeout", 30)
	v.SetDefault("sentry.environment", "development")
}

// Validate checks cross-field constraints viper cannot express.
func (c *Config) Validate() error {
	if c.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if c.Retry.BaseDelaySeconds <= 0 {
		return errors.New("retry.base_delay_seconds must be positive")
	}
	if c.Retry.Jitter < 0 {
		return errors.New("retry.jitter must not be negative")
	}
	// the shortest jittered delay of retry n+1 must exceed the longest of retry n
	if c.Retry.Multiplier <= 1+c.Retry.Jitter {
		return fmt.Errorf("retry.multiplier %.2f must exceed 1+jitter (%.2f) so delays strictly increase",
			c.Retry.Multiplier, 1+c.Retry.Jitter)
	}
	if c.Retry.IntervalSeconds <= 0 || c.Sequence.IntervalSeconds <= 0 {
		return errors.New("sweep intervals must be positive")
	}
	switch c.Queue.Driver {
	case "memory":
	case "amqp":
		if c.Queue.URL == "" {
			return errors.New("queue.url is required for the amqp driver")
		}
	default:
		return fmt.Errorf("unknown queue driver %q", c.Queue.Driver)
	}
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Messaging.AutoSendTemplate != "" && !c.hasTemplate(c.Messaging.AutoSendTemplate) {
		return fmt.Errorf("messaging.auto_send_template %q is not in the template catalog", c.Messaging.AutoSendTemplate)
	}
	return nil
}

func (c *Config) hasTemplate(id string) bool {
	for _, t := range c.Templates {
		if t.ID == id {
			return true
		}
	}
	return false
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// GetAddr returns the Redis address.
func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelaySeconds) * time.Second
}

func (r *RetryConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

func (r *RetryConfig) StaleAfter() time.Duration {
	return time.Duration(r.StaleAfterMinutes) * time.Minute
}

func (s *SequenceConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}
