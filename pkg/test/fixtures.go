package test

import (
	"hk/pkg/api"
	"hk/pkg/system"
)

// SampleApps returns the apps the fixtures below describe.
func SampleApps() []api.App {
	return []api.App{
		{Name: "myapp", Owner: "user@example.com", Stack: "cedar", WebURL: "https://myapp.heroku.com/"},
		{Name: "anotherapp", Owner: "user@example.com", Stack: "bamboo", WebURL: "https://anotherapp.heroku.com/"},
	}
}

// SampleAppJSON is a GET /apps/myapp response body.
func SampleAppJSON() string {
	return `{
  "name": "myapp",
  "owner_email": "user@example.com",
  "stack": "cedar",
  "web_url": "https://myapp.heroku.com/",
  "git_url": "git@heroku.com:myapp.git"
}`
}

// SampleConfigVars returns a config_vars response.
func SampleConfigVars() map[string]string {
	return map[string]string{
		"DATABASE_URL": "postgres://localhost/myapp",
		"RACK_ENV":     "production",
	}
}

// SetupGitRemotes makes runner answer the git remote lookup with remotes.
func SetupGitRemotes(runner *MockCommandRunner, dir string, remotes ...system.GitRemote) {
	var out []byte
	for _, r := range remotes {
		out = append(out, []byte("remote."+r.Name+".url "+r.URL+"\n")...)
	}
	runner.SetResponse(dir, system.GitRemotesCommand, out)
}
