// Package auth loads the credentials used to talk to the platform API.
package auth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrNoCredentials is returned when neither the file nor the environment supplies credentials.
var ErrNoCredentials = errors.New("not logged in: no credentials found")

// Provider supplies the authenticated user and password.
type Provider interface {
	User() string
	Password() string
}

// Credentials are sent as HTTP basic auth; the API key is the password.
type Credentials struct {
	Username string `yaml:"user"`
	APIKey   string `yaml:"api-key"`
}

func (c Credentials) User() string     { return c.Username }
func (c Credentials) Password() string { return c.APIKey }

// Load reads credentials from filename and lets HEROKU_USER and HEROKU_API_KEY override them.
func Load(fs afero.Fs, filename string, getenv func(string) string) (Credentials, error) {
	var creds Credentials

	data, err := afero.ReadFile(fs, filename)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Credentials{}, fmt.Errorf("error reading %s: %w", filename, err)
	}
	if err == nil {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&creds); err != nil && !errors.Is(err, io.EOF) {
			return Credentials{}, fmt.Errorf("error parsing %s: %w", filename, err)
		}
	}

	if getenv != nil {
		if v := getenv("HEROKU_USER"); v != "" {
			creds.Username = v
		}
		if v := getenv("HEROKU_API_KEY"); v != "" {
			creds.APIKey = v
		}
	}

	if creds.APIKey == "" {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

// Save writes credentials to filename with owner-only permissions.
func Save(fs afero.Fs, filename string, creds Credentials) error {
	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("error marshaling credentials: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return err
	}
	return afero.WriteFile(fs, filename, data, 0600)
}
