package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/distspan/ist/pkg/errors"
)

// appName names the application's XDG config and cache subdirectories.
const appName = "ist"

// Config holds the settings ist.toml can override.
type Config struct {
	// Workers is the default world size for `ist build` when --workers is
	// not given.
	Workers int `toml:"workers"`

	// Transport is the default cohort transport ("local" or "redis").
	Transport string `toml:"transport"`

	// RedisAddr is the default Redis address for the redis transport.
	RedisAddr string `toml:"redis_addr"`

	// OutDir is the default DOT output root.
	OutDir string `toml:"out_dir"`

	// StatusAddr, when non-empty, is the default listen address for the
	// optional coordinator status server.
	StatusAddr string `toml:"status_addr"`

	// HistoryURI, when non-empty, is the default MongoDB URI for run-history
	// recording.
	HistoryURI string `toml:"history_uri"`
}

// Default returns a Config with ist's built-in defaults.
func Default() Config {
	return Config{
		Workers:   1,
		Transport: "local",
		OutDir:    "dot",
	}
}

// Dir returns the XDG configuration directory for ist
// (~/.config/ist/ unless $XDG_CONFIG_HOME is set).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "resolve home directory")
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default config file path, Dir()/ist.toml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ist.toml"), nil
}

// Load reads and parses the config file at path, layered on top of
// Default(). A missing file is not an error: Load returns the defaults
// unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "parse config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the config at the default XDG path.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return Load(path)
}
