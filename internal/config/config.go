// Package config loads FRASIG settings from defaults, an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration.
type Config struct {
	Port     int    `yaml:"port" mapstructure:"port"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// MaxInputSize bounds a submitted text in bytes.
	MaxInputSize int               `yaml:"max_input_size" mapstructure:"max_input_size"`
	Parser       ParserConfig      `yaml:"parser" mapstructure:"parser"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Labels       map[string]string `yaml:"labels" mapstructure:"labels"`
}

// ParserConfig selects and tunes the sentence parser.
type ParserConfig struct {
	URL         string        `yaml:"url" mapstructure:"url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Rate        float64       `yaml:"rate" mapstructure:"rate"`
	Burst       int           `yaml:"burst" mapstructure:"burst"`
	Concurrency int           `yaml:"concurrency" mapstructure:"concurrency"`
	Fixtures    string        `yaml:"fixtures" mapstructure:"fixtures"`
}

// CacheConfig selects the parse cache backend.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string        `yaml:"redis_password" mapstructure:"redis_password"`
	RedisDB       int           `yaml:"redis_db" mapstructure:"redis_db"`
	TTL           time.Duration `yaml:"ttl" mapstructure:"ttl"`
	MaxEntries    int           `yaml:"max_entries" mapstructure:"max_entries"`
	Disabled      bool          `yaml:"disabled" mapstructure:"disabled"`
}

// ErrNoParser is returned by Validate when neither a service URL nor fixtures are configured.
var ErrNoParser = errors.New("no parser configured: set parser.url or parser.fixtures")

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:         5000,
		LogLevel:     "info",
		MaxInputSize: 4096,
		Parser: ParserConfig{
			Timeout:     30 * time.Second,
			Rate:        10,
			Burst:       5,
			Concurrency: 1,
		},
		Cache: CacheConfig{
			TTL:        time.Hour,
			MaxEntries: 10000,
		},
	}
}

// envKeys maps environment variables to their position in the config tree.
var envKeys = map[string][]string{
	"PORT":                      {"port"},
	"FRASIG_LOG_LEVEL":          {"log_level"},
	"FRASIG_MAX_INPUT_SIZE":     {"max_input_size"},
	"FRASIG_PARSER_URL":         {"parser", "url"},
	"FRASIG_PARSER_TIMEOUT":     {"parser", "timeout"},
	"FRASIG_PARSER_RATE":        {"parser", "rate"},
	"FRASIG_PARSER_BURST":       {"parser", "burst"},
	"FRASIG_PARSER_CONCURRENCY": {"parser", "concurrency"},
	"FRASIG_PARSER_FIXTURES":    {"parser", "fixtures"},
	"FRASIG_REDIS_ADDR":         {"cache", "redis_addr"},
	"FRASIG_REDIS_PASSWORD":     {"cache", "redis_password"},
	"FRASIG_REDIS_DB":           {"cache", "redis_db"},
	"FRASIG_CACHE_TTL":          {"cache", "ttl"},
	"FRASIG_CACHE_MAX_ENTRIES":  {"cache", "max_entries"},
	"FRASIG_CACHE_DISABLED":     {"cache", "disabled"},
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then the environment.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv decodes the set environment variables on top of cfg.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	overlay := map[string]any{}
	for env, path := range envKeys {
		v, ok := lookup(env)
		if !ok {
			continue
		}
		m := overlay
		for _, key := range path[:len(path)-1] {
			next, ok := m[key].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[key] = next
			}
			m = next
		}
		m[path[len(path)-1]] = v
	}
	if len(overlay) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to build env decoder: %w", err)
	}
	if err := dec.Decode(overlay); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}
	return nil
}

// Validate checks the settings needed to serve requests.
func (c Config) Validate() error {
	if c.Parser.URL == "" && c.Parser.Fixtures == "" {
		return ErrNoParser
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Parser.Concurrency < 1 {
		return fmt.Errorf("parser.concurrency must be at least 1, got %d", c.Parser.Concurrency)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative, got %d", c.MaxInputSize)
	}
	if c.Parser.Rate < 0 || c.Parser.Burst < 0 {
		return fmt.Errorf("parser.rate and parser.burst must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
