package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanfenv "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

// Config is the persisted configuration blob. It is stored as JSON in
// the per-user config directory and written back whenever the token is
// changed through the config popup.
type Config struct {
	AuthToken string `koanf:"auth_token"`
}

// configPath returns the location of the JSON config file.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "qfchat", "config.json"), nil
}

// LoadConfig reads the config file and applies QFCHAT_-prefixed
// environment overrides. A missing file yields an empty config, not an
// error; a corrupt one is reported.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	path, err := configPath()
	if err != nil {
		slog.Warn("config path unavailable", "error", err)
	} else if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// Environment variables with the QFCHAT_ prefix override file
	// values, e.g. QFCHAT_AUTH_TOKEN.
	if err := k.Load(koanfenv.Provider(".", koanfenv.Opt{
		Prefix: "QFCHAT_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "QFCHAT_")), value
		},
	}), nil); err != nil {
		slog.Warn("failed to load environment overrides", "error", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// SaveConfig writes the config back to its JSON file, creating the
// directory if needed.
func SaveConfig(config *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	k := koanf.New(".")
	if err := k.Set("auth_token", config.AuthToken); err != nil {
		return fmt.Errorf("failed to set auth token: %w", err)
	}
	data, err := k.Marshal(koanfjson.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
