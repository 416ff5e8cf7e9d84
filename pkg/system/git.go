package system

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// GitRemotesCommand lists "remote.<name>.url <url>" lines.
const GitRemotesCommand = `git config --get-regexp 'remote\..*\.url'`

var (
	// ErrNoApp is returned when no git remote points at the platform.
	ErrNoApp = errors.New("no app specified and none found in git remotes")
	// ErrAmbiguousApp is returned when several remotes point at different apps.
	ErrAmbiguousApp = errors.New("multiple apps found in git remotes")
)

// GitRemote is a single "remote.<name>.url" entry.
type GitRemote struct {
	Name string
	URL  string
}

// ListGitRemotes returns the remotes configured for the repository in dir.
// A repository without remotes yields an empty list, not an error.
func ListGitRemotes(runner CommandRunner, dir string) ([]GitRemote, error) {
	output, err := runner.Run(dir, GitRemotesCommand)
	if err != nil {
		// git exits 1 when nothing matches, and outside a repository it
		// prints a fatal message instead of config lines
		if len(strings.TrimSpace(string(output))) == 0 || strings.Contains(string(output), "not a git repository") {
			return []GitRemote{}, nil
		}
		return nil, fmt.Errorf("error listing git remotes: %w", err)
	}

	remotes := []GitRemote{}
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		key := fields[0]
		if !strings.HasPrefix(key, "remote.") || !strings.HasSuffix(key, ".url") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, "remote."), ".url")
		remotes = append(remotes, GitRemote{Name: name, URL: fields[1]})
	}
	return remotes, nil
}

// AppFromRemotes picks the app name that the remotes point at on host.
// A remote named "heroku" wins when remotes disagree.
func AppFromRemotes(remotes []GitRemote, host string) (string, error) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`^git@` + regexp.QuoteMeta(host) + `:([\w\d.-]+)\.git$`),
		regexp.MustCompile(`^https://git\.` + regexp.QuoteMeta(host) + `/([\w\d.-]+)\.git$`),
	}

	byRemote := map[string]string{}
	distinct := map[string]bool{}
	for _, remote := range remotes {
		for _, re := range patterns {
			if m := re.FindStringSubmatch(remote.URL); m != nil {
				byRemote[remote.Name] = m[1]
				distinct[m[1]] = true
				break
			}
		}
	}

	switch len(distinct) {
	case 0:
		return "", ErrNoApp
	case 1:
		for app := range distinct {
			return app, nil
		}
	}

	if app, ok := byRemote["heroku"]; ok {
		return app, nil
	}
	apps := make([]string, 0, len(distinct))
	for app := range distinct {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return "", fmt.Errorf("%w: %s", ErrAmbiguousApp, strings.Join(apps, ", "))
}
