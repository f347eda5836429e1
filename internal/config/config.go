// Package config loads the mcrcon command-line configuration.
//
// Configuration is read from a single YAML file named by the --config flag
// or the MCRCON_CONFIG environment variable. Missing fields keep their
// defaults, and command-line flags override whatever the file sets.
//
// Example:
//
//	host: mc.example.com
//	port: 25575
//	password: ${MCRCON_PASSWORD}
//	timeout: 5s
//	history_file: ${HOME}/.mcrcon_history
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcrcon/mcrcon-go/mcrcon"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "MCRCON_CONFIG"

// Config is the CLI configuration.
type Config struct {
	// Host of the Minecraft server.
	// Default: 127.0.0.1
	Host string `yaml:"host"`

	// Port of the RCON listener.
	// Default: 25575
	Port int `yaml:"port"`

	// Password is the rcon.password from server.properties.
	// ${VAR} references are expanded so the secret can live in the environment.
	Password string `yaml:"password"`

	// Timeout bounds authentication and every command reply.
	// Default: 5s
	Timeout string `yaml:"timeout"`

	// DialTimeout bounds establishing the TCP connection.
	// Default: 10s
	DialTimeout string `yaml:"dial_timeout"`

	// LogLevel is one of debug, info, warn, error.
	// Default: warn
	LogLevel string `yaml:"log_level"`

	// Plain disables colour and strips formatting codes from replies.
	Plain bool `yaml:"plain"`

	// HistoryFile is where the REPL keeps its history. Empty disables it.
	// Default: ${HOME}/.mcrcon_history
	HistoryFile string `yaml:"history_file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Host:        mcrcon.DefaultHost,
		Port:        mcrcon.DefaultPort,
		Password:    "",
		Timeout:     mcrcon.DefaultTimeout.String(),
		DialTimeout: mcrcon.DefaultDialTimeout.String(),
		LogLevel:    "warn",
		Plain:       false,
		HistoryFile: "${HOME}/.mcrcon_history",
	}
}

// Load loads configuration from the file named by MCRCON_CONFIG. When the
// variable is unset the defaults are returned.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	if vars["HOME"] == "" {
		vars["HOME"], _ = os.UserHomeDir()
	}

	c.Password = expandVars(c.Password, vars)
	c.HistoryFile = expandVars(c.HistoryFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, fmt.Errorf("host is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if _, err := parsePositiveDuration(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid timeout: %w", err))
	}
	if _, err := parsePositiveDuration(c.DialTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid dial_timeout: %w", err))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Options converts the configuration into client options. Call Validate
// first; unparseable durations fall back to the client defaults.
func (c *Config) Options(logger *slog.Logger) mcrcon.Options {
	timeout, _ := parsePositiveDuration(c.Timeout)
	dialTimeout, _ := parsePositiveDuration(c.DialTimeout)

	return mcrcon.Options{
		Host:        c.Host,
		Port:        c.Port,
		Password:    c.Password,
		Timeout:     timeout,
		DialTimeout: dialTimeout,
		Logger:      logger,
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level: %q (want debug, info, warn or error)", name)
	}
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s is not positive", s)
	}
	return d, nil
}
