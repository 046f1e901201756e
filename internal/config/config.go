package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	CalDAV   CalDAVConfig   `toml:"caldav"`
	Stripe   StripeConfig   `toml:"stripe"`
	Booking  BookingConfig  `toml:"booking"`
	CORS     CORSConfig     `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// CalDAVConfig настройки календарного коллаборатора
type CalDAVConfig struct {
	BaseURL       string `toml:"base_url"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	BookingsPath  string `toml:"bookings_path"`  // collection with studio bookings
	BlackoutsPath string `toml:"blackouts_path"` // collection with closed dates
	Timeout       int    `toml:"timeout"`        // seconds
}

// StripeConfig настройки платёжного процессора
type StripeConfig struct {
	SecretKey        string `toml:"secret_key"`
	WebhookSecret    string `toml:"webhook_secret"`
	WebhookTolerance int    `toml:"webhook_tolerance"` // seconds, 0 = default 300
	SuccessURL       string `toml:"success_url"`
	CancelURL        string `toml:"cancel_url"`
	Currency         string `toml:"currency"`
	DepositAmount    int64  `toml:"deposit_amount"` // minor units
}

// BookingConfig настройки бизнес-слоя бронирования
type BookingConfig struct {
	// Timezone is the reference time zone that defines calendar-day
	// boundaries. Empty means the server's local zone.
	Timezone string `toml:"timezone"`
	// Summary is the label placed on reserving calendar entries.
	Summary string `toml:"summary"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "studio-booking-service"
	}
	if c.CalDAV.Timeout == 0 {
		c.CalDAV.Timeout = 15
	}
	if c.Stripe.Currency == "" {
		c.Stripe.Currency = "usd"
	}
	if c.Booking.Summary == "" {
		c.Booking.Summary = "609 Booking"
	}
}

func (c *Config) validate() error {
	if c.CalDAV.BaseURL == "" {
		return fmt.Errorf("config: caldav.base_url is required")
	}
	if c.CalDAV.BookingsPath == "" || c.CalDAV.BlackoutsPath == "" {
		return fmt.Errorf("config: caldav.bookings_path and caldav.blackouts_path are required")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("config: stripe.secret_key is required")
	}
	if c.Stripe.DepositAmount <= 0 {
		return fmt.Errorf("config: stripe.deposit_amount must be positive")
	}
	return nil
}

// ReferenceLocation resolves the configured reference time zone.
func (c *Config) ReferenceLocation() (*time.Location, error) {
	if c.Booking.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Booking.Timezone)
}
