// Package commands holds the built-in hk commands.
package commands

import (
	"errors"
	"sort"
	"strings"

	"hk/pkg/api"
	"hk/pkg/command"
)

var defaultRegistry = command.NewRegistry()

// Load returns the process-wide registry with every built-in command.
// It registers them on the first call only.
func Load() (*command.Registry, error) {
	if err := defaultRegistry.Load(Register); err != nil {
		return nil, err
	}
	return defaultRegistry, nil
}

// Register adds the built-in commands to reg.
func Register(reg *command.Registry) error {
	groups := []struct {
		name    string
		factory command.Factory
		defs    []command.Definition
	}{
		{"apps", NewApps, appsDefinitions},
		{"config", NewConfig, configDefinitions},
		{"auth", NewAuth, authDefinitions},
		{"plugins", NewPlugins, pluginsDefinitions},
		{"version", NewVersion, versionDefinitions},
		{"help", NewHelp(reg), helpDefinitions},
	}
	for _, g := range groups {
		if err := reg.RegisterGroup(g.name, g.factory, g.defs...); err != nil {
			return err
		}
	}
	return nil
}

// methods adapts a name-to-method table to command.Handler.
type methods map[string]command.Method

func (m methods) Method(name string) (command.Method, bool) {
	fn, ok := m[name]
	return fn, ok
}

// apiFailure turns API errors into the error-reporting path so the user sees
// the server's message. Transport errors are returned unchanged.
func apiFailure(caps command.Capabilities, err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return caps.Error(apiErr.Error())
	}
	return err
}

// columns left-aligns "key: value" pairs, sorted by key.
func columns(pairs map[string]string) []string {
	keys := make([]string, 0, len(pairs))
	width := 0
	for k := range pairs {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+":"+strings.Repeat(" ", width-len(k)+1)+pairs[k])
	}
	return lines
}
