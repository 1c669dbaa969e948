package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/playback"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "algoscope.yaml"

// Config is the on-disk configuration of the CLI and the server.
type Config struct {
	LogLevel     string           `yaml:"log_level"`
	Speeds       []playback.Speed `yaml:"speeds"`
	DefaultSpeed string           `yaml:"default_speed"`
	Server       ServerConfig     `yaml:"server"`
	Redis        RedisConfig      `yaml:"redis"`
	Workspaces   WorkspaceConfig  `yaml:"workspaces"`
	Scenarios    ScenarioConfig   `yaml:"scenarios"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// RedisConfig enables the Redis workspace store when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// WorkspaceConfig enables the file workspace store when Dir is set and Redis is not.
type WorkspaceConfig struct {
	Dir string `yaml:"dir"`
}

type ScenarioConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		Speeds:       playback.DefaultSpeeds(),
		DefaultSpeed: playback.DefaultSpeedLabel,
		Server:       ServerConfig{Port: 8080},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(cfg.Speeds) == 0 {
		cfg.Speeds = playback.DefaultSpeeds()
	}
	if cfg.DefaultSpeed == "" {
		cfg.DefaultSpeed = playback.DefaultSpeedLabel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Speeds))
	found := false
	for _, s := range c.Speeds {
		if s.Label == "" {
			return errors.New("speed entry without label")
		}
		if s.Delay < 0 {
			return fmt.Errorf("speed %q: negative delay", s.Label)
		}
		if seen[s.Label] {
			return fmt.Errorf("speed %q declared twice", s.Label)
		}
		seen[s.Label] = true
		found = found || s.Label == c.DefaultSpeed
	}
	if !found {
		return fmt.Errorf("default_speed %q: %w", c.DefaultSpeed, playback.ErrUnknownSpeed)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Redis.TTL < 0 {
		return errors.New("redis.ttl must not be negative")
	}
	return nil
}

// PlaybackOptions returns the driver options for the configured speed menu.
func (c *Config) PlaybackOptions() []playback.Option {
	return []playback.Option{
		playback.WithSpeeds(c.Speeds),
		playback.WithSpeed(c.DefaultSpeed),
	}
}
