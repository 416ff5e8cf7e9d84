package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hk/pkg/log"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "heroku.com"
	dirName     = ".hk"
)

// Config holds client settings. Zero fields are filled by Defaults.
type Config struct {
	Host            string `yaml:"host"`
	APIURL          string `yaml:"api-url,omitempty"`
	CredentialsFile string `yaml:"credentials-file,omitempty"`
	PluginDir       string `yaml:"plugin-dir,omitempty"`
	LogLevel        string `yaml:"log-level,omitempty"`
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, e := range es {
		sb.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
	}
	return sb.String()
}

// HomeDir returns the directory holding config, credentials and plugins.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, dirName)
}

// DefaultPath is where LoadConfig looks when no path is given.
func DefaultPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		Host:            DefaultHost,
		CredentialsFile: filepath.Join(HomeDir(), "credentials.yaml"),
		PluginDir:       filepath.Join(HomeDir(), "plugins"),
		LogLevel:        "info",
	}
}

// APIBaseURL returns the API root, derived from Host unless set explicitly.
func (c Config) APIBaseURL() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return "https://api." + c.Host
}

func (c Config) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, ValidationError{Field: "host", Message: "host cannot be empty"})
	}
	if strings.ContainsAny(c.Host, "/: ") {
		errs = append(errs, ValidationError{Field: "host", Message: fmt.Sprintf("invalid host %q", c.Host)})
	}
	if c.APIURL != "" && !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		errs = append(errs, ValidationError{Field: "api-url", Message: "must start with http:// or https://"})
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, ValidationError{Field: "log-level", Message: err.Error()})
	}
	return errs
}

// LoadConfig reads filename from fs, applies environment overrides and validates the result.
// A missing file is not an error; defaults are used instead.
func LoadConfig(fs afero.Fs, filename string, getenv func(string) string, logger log.Logger) (*Config, error) {
	cfg := Defaults()

	data, err := afero.ReadFile(fs, filename)
	switch {
	case err == nil:
		if err := decodeStrict(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("No config file, using defaults", "path", filename)
	default:
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	applyEnv(&cfg, getenv)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv("HEROKU_HOST"); v != "" {
		cfg.Host = v
	}
	if v := getenv("HK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
