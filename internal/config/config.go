package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Scoring ScoringConfig `yaml:"scoring"`
	Broker  BrokerConfig  `yaml:"broker"`
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	// InputPolicy is "reject" or "clamp" for finite scores outside 0-100.
	InputPolicy string `yaml:"input_policy"`
	// CacheSize bounds the evaluation cache; 0 disables it.
	CacheSize int `yaml:"cache_size"`
}

type BrokerConfig struct {
	StatsIntervalMs int `yaml:"stats_interval_ms"`
}

type APIConfig struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Broker.StatsIntervalMs) * time.Millisecond
}

// Policy returns the parsed scoring input policy.
func (c *Config) Policy() (scoring.InputPolicy, error) {
	return scoring.ParseInputPolicy(c.Scoring.InputPolicy)
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Scoring: ScoringConfig{
			InputPolicy: string(scoring.PolicyReject),
			CacheSize:   1024,
		},
		Broker: BrokerConfig{
			StatsIntervalMs: 30000,
		},
		API: APIConfig{
			RateLimitPerMinute: 120,
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

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("server.metrics_port %d out of range", c.Server.MetricsPort)
	}
	if c.Server.Port == c.Server.MetricsPort {
		return fmt.Errorf("server.port and server.metrics_port must differ")
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("scoring.input_policy: %w", err)
	}
	if c.Scoring.CacheSize < 0 {
		return fmt.Errorf("scoring.cache_size must not be negative")
	}
	if c.Broker.StatsIntervalMs <= 0 {
		return fmt.Errorf("broker.stats_interval_ms must be positive")
	}
	if c.API.RateLimitPerMinute <= 0 {
		return fmt.Errorf("api.rate_limit_per_minute must be positive")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format %q must be json or text", c.Logging.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("APPRAISE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("APPRAISE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("APPRAISE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v, ok := os.LookupEnv("APPRAISE_HERMES_URL"); ok {
		// An explicitly empty value disables events.
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("APPRAISE_INPUT_POLICY"); v != "" {
		cfg.Scoring.InputPolicy = v
	}
	if v := os.Getenv("APPRAISE_SCORING_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.CacheSize = n
		}
	}
	if v := os.Getenv("APPRAISE_STATS_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Broker.StatsIntervalMs = n
		}
	}
	if v := os.Getenv("APPRAISE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("APPRAISE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("APPRAISE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
