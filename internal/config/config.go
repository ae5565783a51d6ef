// Package config handles the XDG configuration directory, the optional
// config.yaml file, and the task file location.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultTasksFile is the task file, relative to the working directory.
	DefaultTasksFile = "tasks.txt"

	// TasksFileEnv overrides the task file location.
	TasksFileEnv = "TODO_FILE"
)

// FileSettings models config.yaml.
type FileSettings struct {
	TasksFile  string `yaml:"tasks_file"`
	RemoteList string `yaml:"remote_list"`
	Debug      bool   `yaml:"debug"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TasksFile is the task file path.
	TasksFile string

	// RemoteList is the Google Tasks list used by push when --list is not given.
	// Empty means the default list.
	RemoteList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for configDir, or the default directory when empty.
// Settings from config.yaml are applied when the file exists. The task file is
// taken from TODO_FILE, then config.yaml, then DefaultTasksFile.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, TasksFile: DefaultTasksFile}

	settings, err := LoadFileSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	if settings.TasksFile != "" {
		cfg.TasksFile = expandHome(settings.TasksFile)
	}
	cfg.RemoteList = settings.RemoteList
	cfg.Debug = settings.Debug

	if env := os.Getenv(TasksFileEnv); env != "" {
		cfg.TasksFile = expandHome(env)
	}
	return cfg, nil
}

// LoadFileSettings reads config.yaml. A missing file yields zero settings.
func LoadFileSettings(path string) (FileSettings, error) {
	var settings FileSettings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
