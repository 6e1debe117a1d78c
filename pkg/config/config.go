package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the aomaas configuration. Sources are applied in order: defaults,
// .env, the YAML file, environment variables, then command-line flags.
type Config struct {
	// Endpoint is the repository-analysis URL the form posts to.
	Endpoint string `yaml:"endpoint"`
	// RequestTimeout bounds one analysis call. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Output         string        `yaml:"output"`
	LogLevel       string        `yaml:"log_level"`

	Server ServerConfig `yaml:"server"`
	Miner  MinerConfig  `yaml:"miner"`
}

// ServerConfig configures `aomaas serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Upstream, when set, makes the demo page post to this endpoint instead
	// of the in-process miner.
	Upstream string `yaml:"upstream"`
}

// MinerConfig configures the demo backend.
type MinerConfig struct {
	Kind             string `yaml:"kind"`
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	BaseURL          string `yaml:"base_url"`
	MaxOpportunities int    `yaml:"max_opportunities"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint: "http://localhost:8080/api/v1/repositories/mine-opportunities",
		Output:   "human",
		LogLevel: "info",
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Miner: MinerConfig{
			Kind:             "sample",
			MaxOpportunities: 10,
		},
	}
}

// DefaultPath is ~/.aomaas/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aomaas", "config.yaml")
}

// Load builds the configuration. A missing file at path is not an error;
// an unreadable or malformed one is. The result is not validated: callers
// apply their flags first and then call Validate.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Endpoint, "AOMAAS_ENDPOINT")
	setString(&c.Output, "AOMAAS_OUTPUT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Server.Addr, "AOMAAS_ADDR")
	setString(&c.Server.Upstream, "AOMAAS_UPSTREAM")
	setString(&c.Miner.Kind, "AOMAAS_MINER")
	setString(&c.Miner.Provider, "LLM_PROVIDER")

	if v := os.Getenv("AOMAAS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	if v := os.Getenv("AOMAAS_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid AOMAAS_REQUEST_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv("AOMAAS_MAX_OPPORTUNITIES"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid AOMAAS_MAX_OPPORTUNITIES %q: %w", v, err)
		}
		c.Miner.MaxOpportunities = n
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}
	switch c.Output {
	case "human", "json", "yaml":
	default:
		return fmt.Errorf("output must be one of human, json, yaml (got %q)", c.Output)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Miner.MaxOpportunities < 0 {
		return fmt.Errorf("miner.max_opportunities cannot be negative")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
