package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Transport names accepted by PARAGRAPH_MCP_TRANSPORT.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config stores environment-driven settings for the server. The API key is
// only accepted from the environment; everything else may also come from an
// optional YAML file (see LoadFile) which takes precedence over env values.
type Config struct {
	// APIKey is the Paragraph bearer token. Empty is allowed at boot; calls
	// fail with a configuration error until it is set.
	APIKey string `env:"PARAGRAPH_API_KEY"`
	// APIURL is the Paragraph REST API base URL.
	APIURL string `env:"PARAGRAPH_API_URL" envDefault:"https://api.paragraph.com/v1"`
	// PublicationID pre-seeds the publication resolver.
	PublicationID string `env:"PARAGRAPH_PUBLICATION_ID"`
	// PublicationSlug pre-seeds the publication slug used for URL building.
	PublicationSlug string `env:"PARAGRAPH_PUBLICATION_SLUG"`
	// ConfigPath points at an optional YAML settings file.
	ConfigPath string `env:"PARAGRAPH_MCP_CONFIG"`
	// LogLevel sets the logger level.
	LogLevel string `env:"PARAGRAPH_MCP_LOG_LEVEL" envDefault:"info"`
	// Transport selects the MCP transport ("stdio" or "http").
	Transport string `env:"PARAGRAPH_MCP_TRANSPORT" envDefault:"stdio"`
	// ShutdownTimeout controls graceful shutdown duration for the HTTP transport.
	ShutdownTimeout time.Duration `env:"PARAGRAPH_MCP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// HTTP configures the streamable HTTP transport.
	HTTP HTTPConfig
	// RateLimit throttles outbound Paragraph API calls.
	RateLimit RateLimitConfig
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `env:"PARAGRAPH_MCP_HTTP_LISTEN" envDefault:"127.0.0.1:8188"`
	// Path is the MCP HTTP endpoint path.
	Path string `env:"PARAGRAPH_MCP_HTTP_PATH" envDefault:"/mcp"`
	// ReadTimeout limits request read time.
	ReadTimeout time.Duration `env:"PARAGRAPH_MCP_HTTP_READ_TIMEOUT" envDefault:"15s"`
	// WriteTimeout limits response write time.
	WriteTimeout time.Duration `env:"PARAGRAPH_MCP_HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	// IdleTimeout controls idle connections.
	IdleTimeout time.Duration `env:"PARAGRAPH_MCP_HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	// Stateless disables MCP session tracking.
	Stateless bool `env:"PARAGRAPH_MCP_HTTP_STATELESS" envDefault:"true"`
}

// RateLimitConfig throttles calls to the Paragraph API. Zero PerSecond
// disables the limiter.
type RateLimitConfig struct {
	// PerSecond is the sustained request rate.
	PerSecond float64 `env:"PARAGRAPH_MCP_RATE_LIMIT" envDefault:"5"`
	// Burst is the number of requests allowed to exceed the rate briefly.
	Burst int `env:"PARAGRAPH_MCP_RATE_BURST" envDefault:"10"`
}

// fileConfig mirrors the settings that make sense in a YAML file. The API
// key is deliberately absent: credentials stay in the environment.
type fileConfig struct {
	APIURL          string `yaml:"api_url"`
	LogLevel        string `yaml:"log_level"`
	Transport       string `yaml:"transport"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	Publication     struct {
		ID   string `yaml:"id"`
		Slug string `yaml:"slug"`
	} `yaml:"publication"`
	HTTP struct {
		Listen       string `yaml:"listen"`
		Path         string `yaml:"path"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
		IdleTimeout  string `yaml:"idle_timeout"`
		Stateless    *bool  `yaml:"stateless"`
	} `yaml:"http"`
	RateLimit struct {
		PerSecond *float64 `yaml:"per_second"`
		Burst     *int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// Load parses environment variables into Config, applies the optional YAML
// file on top, and validates the result.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if cfg.ConfigPath != "" {
		if err := applyFile(&cfg, cfg.ConfigPath); err != nil {
			return Config{}, err
		}
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.APIURL, file.APIURL)
	setString(&cfg.LogLevel, file.LogLevel)
	setString(&cfg.Transport, file.Transport)
	setString(&cfg.PublicationID, file.Publication.ID)
	setString(&cfg.PublicationSlug, file.Publication.Slug)
	setString(&cfg.HTTP.Listen, file.HTTP.Listen)
	setString(&cfg.HTTP.Path, file.HTTP.Path)
	if file.HTTP.Stateless != nil {
		cfg.HTTP.Stateless = *file.HTTP.Stateless
	}
	if file.RateLimit.PerSecond != nil {
		cfg.RateLimit.PerSecond = *file.RateLimit.PerSecond
	}
	if file.RateLimit.Burst != nil {
		cfg.RateLimit.Burst = *file.RateLimit.Burst
	}

	if err := setDuration(&cfg.ShutdownTimeout, file.ShutdownTimeout, "shutdown_timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.HTTP.ReadTimeout, file.HTTP.ReadTimeout, "http.read_timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.HTTP.WriteTimeout, file.HTTP.WriteTimeout, "http.write_timeout"); err != nil {
		return err
	}
	return setDuration(&cfg.HTTP.IdleTimeout, file.HTTP.IdleTimeout, "http.idle_timeout")
}

// Validate verifies required fields and value ranges.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return fmt.Errorf("api url is required")
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport must be %q or %q", TransportStdio, TransportHTTP)
	}
	if cfg.Transport == TransportHTTP {
		if strings.TrimSpace(cfg.HTTP.Listen) == "" {
			return fmt.Errorf("http.listen is required for the http transport")
		}
		if !strings.HasPrefix(cfg.HTTP.Path, "/") {
			return fmt.Errorf("http.path must start with /")
		}
	}
	if cfg.RateLimit.PerSecond < 0 {
		return fmt.Errorf("rate_limit.per_second must be >= 0")
	}
	if cfg.RateLimit.PerSecond > 0 && cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be >= 1 when the limiter is enabled")
	}
	return nil
}

func setString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, value, field string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", field, err)
	}
	*dst = parsed
	return nil
}
