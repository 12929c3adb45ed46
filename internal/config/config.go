package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Bookrank/internal/scoring"
)

const (
	VariantRated     = "rated"
	VariantHeuristic = "heuristic"
)

// DefaultOrigins are the local development front-ends that are always allowed.
var DefaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5174",
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	CORS    CORSConfig    `yaml:"cors"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port               int   `yaml:"port"`
	MetricsPort        int   `yaml:"metrics_port"`
	MaxBodyBytes       int64 `yaml:"max_body_bytes"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	Variant       string `yaml:"variant"`
	Normalization string `yaml:"normalization"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AllowedOrigins returns DefaultOrigins followed by the configured extras,
// trimmed, with blanks and duplicates removed. First occurrence wins.
func (c *Config) AllowedOrigins() []string {
	seen := make(map[string]bool)
	var origins []string
	for _, o := range append(append([]string{}, DefaultOrigins...), c.CORS.AllowedOrigins...) {
		o = strings.TrimSpace(o)
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

// Policy returns the parsed normalization policy.
func (c *Config) Policy() (scoring.Policy, error) {
	return scoring.ParsePolicy(c.Scoring.Normalization)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Scoring.Variant {
	case VariantRated, VariantHeuristic:
	default:
		return fmt.Errorf("unknown scoring variant %q", c.Scoring.Variant)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8000,
			MetricsPort:        8001,
			MaxBodyBytes:       1 << 20,
			RateLimitPerMinute: 120,
		},
		Scoring: ScoringConfig{
			Variant:       VariantRated,
			Normalization: string(scoring.PolicyNormalized),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BOOKRANK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("BOOKRANK_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("BOOKRANK_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("BOOKRANK_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	// ALLOWED_ORIGINS is kept for existing deployments of the front-end.
	for _, key := range []string{"ALLOWED_ORIGINS", "BOOKRANK_ALLOWED_ORIGINS"} {
		if v := os.Getenv(key); v != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, strings.Split(v, ",")...)
		}
	}
	if v := os.Getenv("BOOKRANK_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("BOOKRANK_VARIANT"); v != "" {
		cfg.Scoring.Variant = v
	}
	if v := os.Getenv("BOOKRANK_NORMALIZATION"); v != "" {
		cfg.Scoring.Normalization = v
	}
	if v := os.Getenv("BOOKRANK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BOOKRANK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
