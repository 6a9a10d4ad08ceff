// Package config resolves runtime settings from defaults, a YAML file, a .env
// file and the environment. Flags are applied on top by main.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvBackendURL      = "INTAKE_BACKEND_URL"
	EnvRequestTimeout  = "INTAKE_REQUEST_TIMEOUT"
	EnvReceiptsPath    = "INTAKE_RECEIPTS_PATH"
	EnvLogPath         = "INTAKE_LOG_PATH"
	EnvNotificationTTL = "INTAKE_NOTIFICATION_TTL"

	DefaultBackendURL      = "http://localhost:5000/api"
	DefaultNotificationTTL = 4 * time.Second
)

// Config holds everything main needs to wire the program.
type Config struct {
	BackendURL      string
	RequestTimeout  time.Duration
	ReceiptsPath    string
	LogPath         string
	NotificationTTL time.Duration
	AltScreen       bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BackendURL:      DefaultBackendURL,
		NotificationTTL: DefaultNotificationTTL,
		AltScreen:       true,
	}
}

// Options locate the optional sources.
type Options struct {
	// File is a YAML config path. Empty skips it; a missing named file is an error.
	File string
	// DotEnv is a .env path. A missing file is ignored.
	DotEnv string
	// Lookup reads the process environment. Nil means os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load layers defaults < YAML < environment. Values from the process
// environment win over the same keys in the .env file.
func Load(opts Options) (Config, error) {
	cfg := Default()
	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return Config{}, err
		}
	}
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if opts.DotEnv != "" {
		dotenv, err := ReadDotEnv(opts.DotEnv)
		if err != nil {
			return Config{}, err
		}
		lookup = layered(lookup, dotenv)
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadDotEnv parses a .env file without touching the process environment.
func ReadDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

type fileConfig struct {
	BackendURL      *string `yaml:"backend_url"`
	RequestTimeout  *string `yaml:"request_timeout"`
	ReceiptsPath    *string `yaml:"receipts_path"`
	LogPath         *string `yaml:"log_path"`
	NotificationTTL *string `yaml:"notification_ttl"`
	AltScreen       *bool   `yaml:"alt_screen"`
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.BackendURL != nil {
		c.BackendURL = strings.TrimSpace(*fc.BackendURL)
	}
	if fc.ReceiptsPath != nil {
		c.ReceiptsPath = strings.TrimSpace(*fc.ReceiptsPath)
	}
	if fc.LogPath != nil {
		c.LogPath = strings.TrimSpace(*fc.LogPath)
	}
	if fc.AltScreen != nil {
		c.AltScreen = *fc.AltScreen
	}
	if fc.RequestTimeout != nil {
		if c.RequestTimeout, err = ParseDuration("request_timeout", *fc.RequestTimeout); err != nil {
			return err
		}
	}
	if fc.NotificationTTL != nil {
		if c.NotificationTTL, err = ParseDuration("notification_ttl", *fc.NotificationTTL); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv overlays the INTAKE_* variables that are set and non-empty.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := nonEmpty(lookup, EnvBackendURL); ok {
		c.BackendURL = v
	}
	if v, ok := nonEmpty(lookup, EnvReceiptsPath); ok {
		c.ReceiptsPath = v
	}
	if v, ok := nonEmpty(lookup, EnvLogPath); ok {
		c.LogPath = v
	}
	var err error
	if v, ok := nonEmpty(lookup, EnvRequestTimeout); ok {
		if c.RequestTimeout, err = ParseDuration(EnvRequestTimeout, v); err != nil {
			return err
		}
	}
	if v, ok := nonEmpty(lookup, EnvNotificationTTL); ok {
		if c.NotificationTTL, err = ParseDuration(EnvNotificationTTL, v); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BackendURL) == "" {
		return errors.New("backend url is empty")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend url %q must start with http:// or https://", c.BackendURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout %s is negative", c.RequestTimeout)
	}
	if c.NotificationTTL <= 0 {
		return fmt.Errorf("notification ttl %s must be positive", c.NotificationTTL)
	}
	return nil
}

// ParseDuration accepts Go durations ("5s") and bare seconds ("5").
func ParseDuration(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, value)
	}
	return d, nil
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func layered(primary func(string) (string, bool), fallback map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := fallback[key]
		return v, ok
	}
}
