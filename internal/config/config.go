package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultResolverHost = "terabox-downloader-direct-download-link-generator1.p.rapidapi.com"
	defaultTimeout      = 15 * time.Second
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Resolver ResolverConfig
	Site     SiteConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// TelegramConfig contains credentials and options for the Telegram Bot API.
type TelegramConfig struct {
	BotToken   string
	BaseURL    string
	WebhookURL string
}

// ResolverConfig contains credentials for the RapidAPI download-link resolver.
type ResolverConfig struct {
	APIKey  string
	BaseURL string
	Host    string
	// LinkMarker is the substring a message must contain to be treated as a link.
	LinkMarker string
}

// SiteConfig describes the public site serving the player page.
type SiteConfig struct {
	BaseURL string
}

// HTTPConfig holds settings shared by outbound HTTP clients.
type HTTPConfig struct {
	Timeout time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "3000"),
		},
		Telegram: TelegramConfig{
			BotToken:   os.Getenv("BOT_TOKEN"),
			BaseURL:    getenvWithDefault("TELEGRAM_BASE_URL", "https://api.telegram.org"),
			WebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
		},
		Resolver: ResolverConfig{
			APIKey:     os.Getenv("RAPIDAPI_KEY"),
			BaseURL:    getenvWithDefault("RESOLVER_BASE_URL", "https://"+defaultResolverHost),
			Host:       getenvWithDefault("RESOLVER_HOST", defaultResolverHost),
			LinkMarker: getenvWithDefault("LINK_MARKER", "terabox.com"),
		},
		Site: SiteConfig{
			BaseURL: os.Getenv("SITE_URL"),
		},
		HTTP: HTTPConfig{
			Timeout: timeout,
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Telegram.BotToken == "":
		return errors.New("BOT_TOKEN must be provided")
	case c.Resolver.APIKey == "":
		return errors.New("RAPIDAPI_KEY must be provided")
	case c.Site.BaseURL == "":
		return errors.New("SITE_URL must be provided")
	}

	if err := requireHTTPURL("SITE_URL", c.Site.BaseURL); err != nil {
		return err
	}

	if c.Telegram.BaseURL == "" {
		return errors.New("TELEGRAM_BASE_URL must not be empty")
	}

	if c.Resolver.BaseURL == "" {
		return errors.New("RESOLVER_BASE_URL must not be empty")
	}

	if c.Resolver.Host == "" {
		return errors.New("RESOLVER_HOST must not be empty")
	}

	if c.Resolver.LinkMarker == "" {
		return errors.New("LINK_MARKER must not be empty")
	}

	if c.HTTP.Timeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}

	return nil
}

func requireHTTPURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, raw)
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}
