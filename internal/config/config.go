package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	Services ServicesConfig
	Client   ClientConfig
	Session  SessionConfig
	Logging  LoggingConfig
}

// ServicesConfig lists the base URLs of the remote PayFlow services.
type ServicesConfig struct {
	API          string // auth + transactions
	User         string
	Wallet       string
	Reward       string
	Notification string
}

// ClientConfig governs outbound HTTP behaviour.
type ClientConfig struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// SessionConfig controls where client state (token, cached profile) lives.
type SessionConfig struct {
	StateDir string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultAPIURL          = "http://localhost:8080"
	defaultUserURL         = "http://localhost:8089"
	defaultWalletURL       = "http://localhost:8093"
	defaultRewardURL       = "http://localhost:8083"
	defaultNotificationURL = "http://localhost:8088"
	defaultTimeout         = 15 * time.Second
	defaultPollInterval    = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Services: ServicesConfig{
			API:          valueOrDefault("PAYFLOW_API_BASE_URL", defaultAPIURL),
			User:         valueOrDefault("PAYFLOW_USER_URL", defaultUserURL),
			Wallet:       valueOrDefault("PAYFLOW_WALLET_URL", defaultWalletURL),
			Reward:       valueOrDefault("PAYFLOW_REWARD_URL", defaultRewardURL),
			Notification: valueOrDefault("PAYFLOW_NOTIFICATION_URL", defaultNotificationURL),
		},
		Client: ClientConfig{
			Timeout:      defaultTimeout,
			PollInterval: defaultPollInterval,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if v := os.Getenv("PAYFLOW_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PAYFLOW_HTTP_TIMEOUT: %w", err)
		}
		cfg.Client.Timeout = d
	}

	if v := os.Getenv("PAYFLOW_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PAYFLOW_POLL_INTERVAL: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("PAYFLOW_POLL_INTERVAL must be positive, got %s", d)
		}
		cfg.Client.PollInterval = d
	}

	stateDir := os.Getenv("PAYFLOW_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".payflow")
	}
	cfg.Session.StateDir = stateDir

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}
