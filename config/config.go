package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agenthub-io/agenthub/log"
)

const (
	ConfigFileName = "config.json"

	// defaultServerURL points at a locally running backend.
	defaultServerURL = "http://localhost:5000"
)

// GetConfigDir returns the path to the application's configuration directory.
// Uses XDG-compliant ~/.config/agenthub/. On first run, migrates the legacy
// ~/.agenthub directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	newDir := filepath.Join(homeDir, ".config", "agenthub")

	// Already exists — fast path
	if _, err := os.Stat(newDir); err == nil {
		return newDir, nil
	}

	oldDir := filepath.Join(homeDir, ".agenthub")
	if _, err := os.Stat(oldDir); err == nil {
		if mkErr := os.MkdirAll(filepath.Dir(newDir), 0755); mkErr != nil {
			log.ErrorLog.Printf("failed to create %s: %v", filepath.Dir(newDir), mkErr)
			return oldDir, nil
		}
		if renameErr := os.Rename(oldDir, newDir); renameErr != nil {
			log.ErrorLog.Printf("failed to migrate %s to %s: %v", oldDir, newDir, renameErr)
			return oldDir, nil
		}
	}

	return newDir, nil
}

// Config represents the application configuration.
type Config struct {
	// ServerURL is the base URL of the agent hub backend.
	ServerURL string `json:"server_url"`
	// SessionStore selects the session persistence backend: "sqlite" or "file".
	SessionStore string `json:"session_store,omitempty"`
	// RequestTimeoutSeconds bounds every backend HTTP call. 0 means the
	// built-in default.
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	trueVal := true
	return &Config{
		ServerURL:        defaultServerURL,
		SessionStore:     "sqlite",
		TelemetryEnabled: &trueVal,
	}
}

// RequestTimeout returns the configured HTTP timeout, or 0 when the client
// should keep its built-in default.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	if config.ServerURL == "" {
		config.ServerURL = defaultServerURL
	}

	// Overlay TOML config if it exists (TOML is authority for overrides)
	tomlResult, tomlErr := LoadTOMLConfig()
	if tomlErr != nil {
		log.WarningLog.Printf("failed to load TOML config: %v", tomlErr)
	} else if tomlResult != nil {
		if tomlResult.ServerURL != "" {
			config.ServerURL = tomlResult.ServerURL
		}
		if tomlResult.SessionStore != "" {
			config.SessionStore = tomlResult.SessionStore
		}
		if tomlResult.RequestTimeoutSeconds > 0 {
			config.RequestTimeoutSeconds = tomlResult.RequestTimeoutSeconds
		}
		if tomlResult.TelemetryEnabled != nil {
			config.TelemetryEnabled = tomlResult.TelemetryEnabled
		}
	}

	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
