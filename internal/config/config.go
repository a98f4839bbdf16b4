// Package config loads the user-facing configuration file.
//
// The file lives at <config dir>/conman/config.toml:
//
//	[upstream]
//	url = "git@github.com:user/configs.git"
//	branch = "main"
//	key_file = "~/.ssh/id_ed25519"
//
//	[encryption]
//	passphrase = ""
//
// An empty passphrase is allowed; commands that need one prompt for it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissing is returned when no config file exists yet. `conman init`
// explains how to create one.
var ErrMissing = errors.New("config file not found")

// Upstream describes the remote repository conman synchronizes with.
type Upstream struct {
	URL     string
	Branch  string
	KeyFile string
}

// Encryption holds the at-rest encryption settings.
type Encryption struct {
	Passphrase string
}

// Config is the loaded configuration document.
type Config struct {
	Upstream   Upstream
	Encryption Encryption

	path string
}

// Read loads the config file at path.
func Read(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetDefault("upstream.branch", "main")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Upstream: Upstream{
			URL:     v.GetString("upstream.url"),
			Branch:  v.GetString("upstream.branch"),
			KeyFile: expandTilde(v.GetString("upstream.key_file")),
		},
		Encryption: Encryption{
			Passphrase: v.GetString("encryption.passphrase"),
		},
		path: path,
	}

	if cfg.Upstream.URL == "" {
		return nil, fmt.Errorf("config %s has no upstream.url", path)
	}

	return cfg, nil
}

// Write persists the config back to its file. Used by branch checkout, which
// records the new active branch.
func (c *Config) Write() error {
	v := viper.New()
	v.SetConfigFile(c.path)
	v.SetConfigType("toml")

	v.Set("upstream.url", c.Upstream.URL)
	v.Set("upstream.branch", c.Upstream.Branch)
	if c.Upstream.KeyFile != "" {
		v.Set("upstream.key_file", c.Upstream.KeyFile)
	}
	v.Set("encryption.passphrase", c.Encryption.Passphrase)

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandTilde resolves a leading ~/ against the user's home directory.
func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
