package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every service setting.
type Config struct {
	Server    ServerConfig
	App       AppConfig
	Lead      LeadConfig
	Concierge ConciergeConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	lead, err := loadLeadConfig()
	if err != nil {
		return nil, err
	}

	concierge, err := loadConciergeConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		App:       AppConfig{Env: getEnvOrDefault("APP_ENV", "development")},
		Lead:      lead,
		Concierge: concierge,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AppConfig carries the deployment environment.
type AppConfig struct {
	Env string
}

// Production gates the lead read-back endpoint.
func (c AppConfig) Production() bool {
	return c.Env == "production"
}

// LeadConfig describes lead persistence and webhook forwarding.
type LeadConfig struct {
	StorePath      string
	WebhookURL     string
	WebhookTimeout time.Duration
}

// WebhookEnabled reports whether a forwarding destination is configured.
func (c LeadConfig) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

func loadLeadConfig() (LeadConfig, error) {
	timeoutSeconds := 10
	if override, err := parseOptionalIntEnv("LEAD_WEBHOOK_TIMEOUT"); err != nil {
		return LeadConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return LeadConfig{}, fmt.Errorf("LEAD_WEBHOOK_TIMEOUT must be at least 1 second, got %d", *override)
		}
		timeoutSeconds = *override
	}

	return LeadConfig{
		StorePath:      getEnvOrDefault("LEAD_STORE_PATH", "data/leads.json"),
		WebhookURL:     strings.TrimSpace(os.Getenv("LEAD_WEBHOOK_URL")),
		WebhookTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// ConciergeConfig describes conversation pacing.
type ConciergeConfig struct {
	ReplyDelay time.Duration
}

func loadConciergeConfig() (ConciergeConfig, error) {
	delayMillis := 350
	if override, err := parseOptionalIntEnv("CONCIERGE_REPLY_DELAY_MS"); err != nil {
		return ConciergeConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return ConciergeConfig{}, fmt.Errorf("CONCIERGE_REPLY_DELAY_MS must not be negative, got %d", *override)
		}
		delayMillis = *override
	}

	return ConciergeConfig{ReplyDelay: time.Duration(delayMillis) * time.Millisecond}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
