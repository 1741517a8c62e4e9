package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const tomlFileName = "config.toml"

// TOMLConfigResult holds values parsed from the optional config.toml overlay.
// Fields left at their zero value are ignored by the caller.
type TOMLConfigResult struct {
	ServerURL             string `toml:"server_url"`
	SessionStore          string `toml:"session_store"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	TelemetryEnabled      *bool  `toml:"telemetry_enabled"`
}

// LoadTOMLConfig reads config.toml from the config directory.
// Returns (nil, nil) when the file does not exist.
func LoadTOMLConfig() (*TOMLConfigResult, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadTOMLConfigFrom(filepath.Join(configDir, tomlFileName))
}

// LoadTOMLConfigFrom parses the TOML overlay at an explicit path.
// Split out from LoadTOMLConfig for tests.
func LoadTOMLConfigFrom(path string) (*TOMLConfigResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var result TOMLConfigResult
	if _, err := toml.DecodeFile(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
