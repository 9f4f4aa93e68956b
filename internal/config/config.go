// Package config loads and persists taskdeck configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the full taskdeck configuration
type Config struct {
	API   APIConfig   `json:"api"`
	Poll  PollConfig  `json:"poll"`
	Board BoardConfig `json:"board"`
}

// APIConfig contains remote task service settings
type APIConfig struct {
	BaseURL   string `json:"baseUrl"`
	TimeoutMs int    `json:"timeoutMs"`
}

// PollConfig contains task list polling settings
type PollConfig struct {
	FocusedIntervalMs int `json:"focusedIntervalMs"`
	BlurredIntervalMs int `json:"blurredIntervalMs"`
}

// BoardConfig contains board behavior settings
type BoardConfig struct {
	ReorderDebounceMs int    `json:"reorderDebounceMs"`
	DefaultProject    string `json:"defaultProject"`
	ToastDurationMs   int    `json:"toastDurationMs"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8181",
			TimeoutMs: 10000,
		},
		Poll: PollConfig{
			FocusedIntervalMs: 2000,
			BlurredIntervalMs: 10000,
		},
		Board: BoardConfig{
			ReorderDebounceMs: 800,
			ToastDurationMs:   3000,
		},
	}
}

// Timeout returns the API request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

// FocusedInterval returns the poll interval while the board is focused.
func (c *Config) FocusedInterval() time.Duration {
	return time.Duration(c.Poll.FocusedIntervalMs) * time.Millisecond
}

// BlurredInterval returns the poll interval while the board is visible but
// unfocused.
func (c *Config) BlurredInterval() time.Duration {
	return time.Duration(c.Poll.BlurredIntervalMs) * time.Millisecond
}

// ReorderDebounce returns the debounce window for reorder persistence.
func (c *Config) ReorderDebounce() time.Duration {
	return time.Duration(c.Board.ReorderDebounceMs) * time.Millisecond
}

// ToastDuration returns how long toasts stay on screen.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Board.ToastDurationMs) * time.Millisecond
}

// LoadConfig loads configuration from dir with priority:
// 1. CLI flags (applied by the caller)
// 2. .taskdeck.json in dir (with version migration support)
// 3. Defaults
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".taskdeck.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse .taskdeck.json: %w", err)
	}
	return MergeWithDefaults(cfg), nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.TimeoutMs == 0 {
		cfg.API.TimeoutMs = defaults.API.TimeoutMs
	}

	if cfg.Poll.FocusedIntervalMs == 0 {
		cfg.Poll.FocusedIntervalMs = defaults.Poll.FocusedIntervalMs
	}
	if cfg.Poll.BlurredIntervalMs == 0 {
		cfg.Poll.BlurredIntervalMs = defaults.Poll.BlurredIntervalMs
	}

	if cfg.Board.ReorderDebounceMs == 0 {
		cfg.Board.ReorderDebounceMs = defaults.Board.ReorderDebounceMs
	}
	if cfg.Board.ToastDurationMs == 0 {
		cfg.Board.ToastDurationMs = defaults.Board.ToastDurationMs
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

// unmarshalInto re-marshals a raw config map into a typed Config.
func unmarshalInto(raw map[string]interface{}) (*Config, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
