// Package plugin lists plugins installed under the client's home directory.
// Installing and updating plugins is not handled here.
package plugin

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Manager finds plugins in Home on Fs. Each plugin is a directory.
type Manager struct {
	Fs   afero.Fs
	Home string
}

func NewManager(fs afero.Fs, home string) *Manager {
	return &Manager{Fs: fs, Home: home}
}

// List returns installed plugin names in sorted order.
// A missing home directory means no plugins are installed.
func (m *Manager) List() ([]string, error) {
	entries, err := afero.ReadDir(m.Fs, m.Home)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("error reading plugin directory %s: %w", m.Home, err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
