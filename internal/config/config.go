package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// AppName names the per-user configuration directory.
const AppName = "nanokey"

// Poll interval bounds, in milliseconds.
const (
	DefaultPollIntervalMS = 50
	MinPollIntervalMS     = 10
	MaxPollIntervalMS     = 1000
)

// Config holds the application configuration
type Config struct {
	Hotkey                string `json:"hotkey" toml:"hotkey"`
	HotkeyLogEnabled      bool   `json:"hotkey_log_enabled" toml:"hotkey_log_enabled"`
	UseNotifications      bool   `json:"use_notifications" toml:"use_notifications"`
	CapturePollIntervalMS int    `json:"capture_poll_interval_ms" toml:"capture_poll_interval_ms"`
	PopupGap              int    `json:"popup_gap" toml:"popup_gap"`
	PopupBelowOffset      int    `json:"popup_below_offset" toml:"popup_below_offset"`
	Debug                 bool   `json:"debug" toml:"debug"`

	// Non-serialized fields (runtime state)
	configPath string
}

// Default returns the configuration written for first-time users.
func Default() *Config {
	return &Config{
		Hotkey:                hotkey.DefaultMnemonic,
		UseNotifications:      true,
		CapturePollIntervalMS: DefaultPollIntervalMS,
		PopupGap:              10,
		PopupBelowOffset:      20,
	}
}

// DefaultPath returns <user config dir>/nanokey/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.json"), nil
}

// GetConfigPath returns the path to the configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// TraceLogPath returns hotkey.log next to the configuration file.
func (c *Config) TraceLogPath() string {
	return filepath.Join(filepath.Dir(c.configPath), "hotkey.log")
}

// PollInterval returns the capture poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.CapturePollIntervalMS) * time.Millisecond
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads the configuration file, creating a default one when missing,
// and validates it. JSON is assumed unless the path ends in .toml.
func Load(configPath string) (*Config, error) {
	log := logging.For("config")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
		log.Info("config file not found, creating default", zap.String("path", configPath))
		if createErr := CreateDefaultConfig(configPath); createErr != nil {
			return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", configPath, createErr)
		}
		data, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s' even after creating default: %w", configPath, err)
		}
	}

	cfg := Default()
	if isTOML(configPath) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}

	cfg.configPath = configPath
	for _, warning := range cfg.Validate() {
		log.Warn(warning, zap.String("path", configPath))
	}
	return cfg, nil
}

// Validate normalizes the configuration in place and returns a message for
// every value it had to replace.
func (c *Config) Validate() []string {
	var warnings []string

	if canonical, err := hotkey.Canonical(c.Hotkey); err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid hotkey '%s' (%v), using %s", c.Hotkey, err, hotkey.DefaultMnemonic))
		c.Hotkey = hotkey.DefaultMnemonic
	} else {
		c.Hotkey = canonical
	}

	switch {
	case c.CapturePollIntervalMS == 0:
		c.CapturePollIntervalMS = DefaultPollIntervalMS
	case c.CapturePollIntervalMS < MinPollIntervalMS:
		warnings = append(warnings, fmt.Sprintf("capture poll interval %dms below minimum, using %dms", c.CapturePollIntervalMS, MinPollIntervalMS))
		c.CapturePollIntervalMS = MinPollIntervalMS
	case c.CapturePollIntervalMS > MaxPollIntervalMS:
		warnings = append(warnings, fmt.Sprintf("capture poll interval %dms above maximum, using %dms", c.CapturePollIntervalMS, MaxPollIntervalMS))
		c.CapturePollIntervalMS = MaxPollIntervalMS
	}

	if c.PopupGap < 0 {
		warnings = append(warnings, "negative popup gap, using 0")
		c.PopupGap = 0
	}
	if c.PopupBelowOffset < 0 {
		warnings = append(warnings, "negative popup below offset, using 0")
		c.PopupBelowOffset = 0
	}
	return warnings
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set, cannot save")
	}
	return c.writeTo(c.configPath)
}

func (c *Config) writeTo(path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}
	logging.For("config").Info("configuration saved", zap.String("path", path))
	return nil
}

// CreateDefaultConfig writes the default configuration to configPath.
func CreateDefaultConfig(configPath string) error {
	return Default().writeTo(configPath)
}
