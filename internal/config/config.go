// Package config handles the XDG configuration directory and client settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todolist"

	// EnvFile is the optional settings file inside the config directory.
	EnvFile = "config.env"

	// DefaultBaseURL is the mock API hosting the /todolist collection.
	DefaultBaseURL = "https://668e372ebf9912d4c92d405f.mockapi.io"

	// DefaultDateLayout renders dates the way an en-US browser does.
	DefaultDateLayout = "1/2/2006"

	// DefaultLogLevel keeps failed store calls visible without debug noise.
	DefaultLogLevel = "warn"
)

// Setting keys, read from the environment and from config.env.
const (
	KeyURL        = "TODOLIST_URL"
	KeyToken      = "TODOLIST_TOKEN"
	KeyDateLayout = "TODOLIST_DATE_LAYOUT"
	KeyLogLevel   = "LOG_LEVEL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the store root; the collection lives at BaseURL + "/todolist".
	BaseURL string

	// Token is an optional bearer token sent with every store request.
	Token string

	// DateLayout is the time layout used to print creation dates.
	DateLayout string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for the default or specified config directory and
// loads its settings.
// If configDir is empty, uses XDG_CONFIG_HOME/todolist or $HOME/.config/todolist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:        dir,
		BaseURL:    DefaultBaseURL,
		DateLayout: DefaultDateLayout,
		LogLevel:   DefaultLogLevel,
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
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

// EnvPath returns the path to the optional settings file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// HasEnvFile checks if the settings file exists.
func (c *Config) HasEnvFile() bool {
	_, err := os.Stat(c.EnvPath())
	return err == nil
}

// load applies config.env, then the process environment, over the defaults.
func (c *Config) load() error {
	values := map[string]string{}
	if c.HasEnvFile() {
		fileValues, err := godotenv.Read(c.EnvPath())
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvFile, err)
		}
		values = fileValues
	}

	for _, key := range []string{KeyURL, KeyToken, KeyDateLayout, KeyLogLevel} {
		if v := os.Getenv(key); v != "" {
			values[key] = v
		}
	}

	if v := strings.TrimSpace(values[KeyURL]); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(values[KeyToken]); v != "" {
		c.Token = v
	}
	if v := values[KeyDateLayout]; strings.TrimSpace(v) != "" {
		c.DateLayout = v
	}
	if v := strings.TrimSpace(values[KeyLogLevel]); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks that the settings can be used to reach a store.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("store url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid store url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid store url: %s", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid store url: %s", c.BaseURL)
	}
	return nil
}

// CollectionURL returns the URL of the /todolist collection.
func (c *Config) CollectionURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/todolist"
}
