// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	DynamoDB      DynamoDBConfig      `yaml:"dynamodb"`
	Amadeus       AmadeusConfig       `yaml:"amadeus"`
	Auth          AuthConfig          `yaml:"auth"`
	CORS          CORSConfig          `yaml:"cors"`
	API           APIConfig           `yaml:"api"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Alerts        AlertsConfig        `yaml:"alerts"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects the storage driver and holds PostgreSQL connection
// settings.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // postgres, dynamodb
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// DynamoDBConfig defines the DynamoDB tables used when database.driver is
// dynamodb.
type DynamoDBConfig struct {
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint"` // local override, e.g. DynamoDB Local
	WatchesTable   string `yaml:"watches_table"`
	SnapshotsTable string `yaml:"snapshots_table"`
	ActiveIndex    string `yaml:"active_index"`
	LocksTable     string `yaml:"locks_table"` // optional
}

// AmadeusConfig defines fare quote provider settings.
type AmadeusConfig struct {
	ClientID      string          `yaml:"client_id"`
	ClientSecret  string          `yaml:"client_secret"`
	TokenURL      string          `yaml:"token_url"`
	OffersURL     string          `yaml:"offers_url"`
	Timeout       time.Duration   `yaml:"timeout"`
	RetryAttempts uint            `yaml:"retry_attempts"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines provider rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// AuthConfig defines bearer token validation. Exactly one of HMACSecret or
// PublicKeyFile is expected when serving the API.
type AuthConfig struct {
	HMACSecret    string `yaml:"hmac_secret"`
	PublicKeyFile string `yaml:"public_key_file"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	SubjectClaim  string `yaml:"subject_claim"`
}

// CORSConfig defines the cross-origin policy applied to every response.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials *bool    `yaml:"allow_credentials"`
}

// APIConfig defines behavior switches for the watch API.
type APIConfig struct {
	// HistoryRequiresOwner restricts price history reads to the watch owner.
	HistoryRequiresOwner bool `yaml:"history_requires_owner"`
	// EnablePollTrigger exposes POST /api/v1/poll.
	EnablePollTrigger bool `yaml:"enable_poll_trigger"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	WatchDelay   time.Duration `yaml:"watch_delay"`
	ReapInterval time.Duration `yaml:"reap_interval"`
	LockTTL      time.Duration `yaml:"lock_ttl"`
}

// AlertsConfig defines alert behavior.
type AlertsConfig struct {
	Cooldown          time.Duration `yaml:"cooldown"`           // default: 24h
	SnapshotRetention time.Duration `yaml:"snapshot_retention"` // default: 168h
	BookingBaseURL    string        `yaml:"booking_base_url"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Email   EmailConfig   `yaml:"email"`
	Discord DiscordConfig `yaml:"discord"`
}

// EmailConfig defines SES email delivery settings.
type EmailConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Sender    string `yaml:"sender"`
	Recipient string `yaml:"recipient"` // default: sender
	Region    string `yaml:"region"`
	Mock      bool   `yaml:"mock"` // log rendered messages instead of sending
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	Username   string `yaml:"username"` // optional display name override
}

// TelemetryConfig defines OpenTelemetry trace export. Tracing is disabled
// when OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
	ServiceName  string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnv substitutes $VAR and ${VAR} from the environment. ${VAR:-fallback}
// yields fallback when VAR is unset or empty.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		name, fallback, hasFallback := strings.Cut(key, ":-")
		if v := os.Getenv(name); v != "" || !hasFallback {
			return v
		}
		return fallback
	})
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyDynamoDBDefaults(&cfg.DynamoDB)
	applyAmadeusDefaults(&cfg.Amadeus)
	applyAuthDefaults(&cfg.Auth)
	applyCORSDefaults(&cfg.CORS)
	applyScheduleDefaults(&cfg.Schedule)
	applyAlertsDefaults(&cfg.Alerts)
	applyNotificationDefaults(&cfg.Notifications)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyDynamoDBDefaults(d *DynamoDBConfig) {
	if d.Region == "" {
		d.Region = "us-east-1"
	}
	if d.WatchesTable == "" {
		d.WatchesTable = "faredrop-watches"
	}
	if d.SnapshotsTable == "" {
		d.SnapshotsTable = "faredrop-price-snapshots"
	}
	if d.ActiveIndex == "" {
		d.ActiveIndex = "active-watches-index"
	}
}

func applyAmadeusDefaults(a *AmadeusConfig) {
	if a.TokenURL == "" {
		a.TokenURL = "https://test.api.amadeus.com/v1/security/oauth2/token"
	}
	if a.OffersURL == "" {
		a.OffersURL = "https://test.api.amadeus.com/v2/shopping/flight-offers"
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.RetryAttempts == 0 {
		a.RetryAttempts = 3
	}
	applyRateLimitDefaults(&a.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 1.0
	}
	if r.Burst == 0 {
		r.Burst = 1
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 2000
	}
}

func applyAuthDefaults(a *AuthConfig) {
	if a.SubjectClaim == "" {
		a.SubjectClaim = "sub"
	}
}

func applyCORSDefaults(c *CORSConfig) {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{
			"Content-Type",
			"Authorization",
			"X-Amz-Date",
			"X-Api-Key",
			"X-Amz-Security-Token",
			"X-Amz-User-Agent",
		}
	}
	if c.AllowCredentials == nil {
		allow := true
		c.AllowCredentials = &allow
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.PollInterval == 0 {
		s.PollInterval = 6 * time.Hour
	}
	if s.WatchDelay == 0 {
		s.WatchDelay = 500 * time.Millisecond
	}
	if s.ReapInterval == 0 {
		s.ReapInterval = time.Hour
	}
	if s.LockTTL == 0 {
		s.LockTTL = 30 * time.Minute
	}
}

func applyAlertsDefaults(a *AlertsConfig) {
	if a.Cooldown == 0 {
		a.Cooldown = 24 * time.Hour
	}
	if a.SnapshotRetention == 0 {
		a.SnapshotRetention = 7 * 24 * time.Hour
	}
	if a.BookingBaseURL == "" {
		a.BookingBaseURL = "https://www.google.com/travel/flights"
	}
}

func applyNotificationDefaults(n *NotificationsConfig) {
	if n.Email.Region == "" {
		n.Email.Region = "us-east-1"
	}
	if n.Email.Recipient == "" {
		n.Email.Recipient = n.Email.Sender
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "faredrop-tracker"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	switch db := cfg.Database; db.Driver {
	case DriverPostgres:
		check(db.Host != "", "database.host is required")
		check(db.Name != "", "database.name is required")
		check(db.User != "", "database.user is required")
	case DriverDynamoDB:
		// Table names are defaulted; nothing else is mandatory.
	default:
		check(false, "database.driver must be one of: postgres, dynamodb (got %q)", db.Driver)
	}

	check(cfg.Server.Port > 0 && cfg.Server.Port <= 65535,
		"server.port must be between 1 and 65535 (got %d)", cfg.Server.Port)
	check(cfg.Amadeus.RateLimit.PerSecond > 0,
		"amadeus.rate_limit.per_second must be positive")
	check(cfg.Schedule.PollInterval >= time.Minute,
		"schedule.poll_interval must be at least 1m (got %s)", cfg.Schedule.PollInterval)
	check(cfg.Alerts.Cooldown >= 0, "alerts.cooldown must not be negative")
	check(cfg.Alerts.SnapshotRetention > 0, "alerts.snapshot_retention must be positive")
	check(cfg.Logging.Format == "text" || cfg.Logging.Format == "json",
		"logging.format must be text or json (got %q)", cfg.Logging.Format)

	n := cfg.Notifications
	check(!n.Email.Enabled || n.Email.Sender != "",
		"notifications.email.sender is required when email is enabled")
	check(!n.Discord.Enabled || n.Discord.WebhookURL != "",
		"notifications.discord.webhook_url is required when discord is enabled")
	check(cfg.Auth.HMACSecret == "" || cfg.Auth.PublicKeyFile == "",
		"auth.hmac_secret and auth.public_key_file are mutually exclusive")

	return errors.Join(errs...)
}
