// Package api is a small JSON-over-HTTP client for the platform API.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hk/pkg/log"
)

const (
	DefaultHost    = "heroku.com"
	defaultTimeout = 30 * time.Second
)

// ErrNotFound matches any APIError with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Core is the API surface commands depend on.
type Core interface {
	Host() string
	ListApps() ([]App, error)
	GetApp(name string) (App, error)
	CreateApp(name string) (App, error)
	DestroyApp(name string) error
	ConfigVars(app string) (map[string]string, error)
	AddConfigVars(app string, vars map[string]string) error
	RemoveConfigVar(app, key string) error
}

// Client implements Core over HTTP.
type Client struct {
	host     string
	baseURL  string
	user     string
	password string
	http     *http.Client
	logger   log.Logger
}

type Option func(*Client)

// WithBaseURL overrides the API root, which otherwise is https://api.<host>.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client, e.g. to install a stub transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a client for host authenticating as user/password.
func NewClient(host, user, password string, opts ...Option) *Client {
	if host == "" {
		host = DefaultHost
	}
	c := &Client{
		host:     host,
		baseURL:  "https://api." + host,
		user:     user,
		password: password,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   log.Nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Host() string { return c.host }

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListApps() ([]App, error) {
	var apps []App
	if err := c.do(http.MethodGet, "/apps", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) GetApp(name string) (App, error) {
	var app App
	err := c.do(http.MethodGet, "/apps/"+url.PathEscape(name), nil, &app)
	return app, err
}

// CreateApp creates an app. An empty name lets the platform pick one.
func (c *Client) CreateApp(name string) (App, error) {
	req := map[string]string{}
	if name != "" {
		req["name"] = name
	}
	var app App
	err := c.do(http.MethodPost, "/apps", req, &app)
	return app, err
}

func (c *Client) DestroyApp(name string) error {
	return c.do(http.MethodDelete, "/apps/"+url.PathEscape(name), nil, nil)
}

func (c *Client) ConfigVars(app string) (map[string]string, error) {
	vars := map[string]string{}
	if err := c.do(http.MethodGet, "/apps/"+url.PathEscape(app)+"/config_vars", nil, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

func (c *Client) AddConfigVars(app string, vars map[string]string) error {
	return c.do(http.MethodPut, "/apps/"+url.PathEscape(app)+"/config_vars", vars, nil)
}

func (c *Client) RemoveConfigVar(app, key string) error {
	return c.do(http.MethodDelete, "/apps/"+url.PathEscape(app)+"/config_vars/"+url.PathEscape(key), nil, nil)
}

func (c *Client) do(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.user, c.password)

	c.logger.Debug("API request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.logger.Debug("API response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

func parseError(method, path string, status int, data []byte) error {
	apiErr := &APIError{StatusCode: status, Method: method, Path: path}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = payload.Message
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}
