package auth_test

import (
	"testing"

	"hk/pkg/auth"
	"hk/pkg/test"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	test.CreateTestFile(t, fs, "/home/me/.hk/credentials.yaml", "user: me@example.com\napi-key: secret\n")

	creds, err := auth.Load(fs, "/home/me/.hk/credentials.yaml", nil)
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", creds.User())
	assert.Equal(t, "secret", creds.Password())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	test.CreateTestFile(t, fs, "/creds.yaml", "user: me@example.com\napi-key: secret\n")

	env := map[string]string{"HEROKU_API_KEY": "from-env"}
	creds, err := auth.Load(fs, "/creds.yaml", func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", creds.User())
	assert.Equal(t, "from-env", creds.Password())
}

func TestLoad_EnvOnly(t *testing.T) {
	env := map[string]string{"HEROKU_USER": "ci@example.com", "HEROKU_API_KEY": "key"}

	creds, err := auth.Load(afero.NewMemMapFs(), "/missing.yaml", func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, auth.Credentials{Username: "ci@example.com", APIKey: "key"}, creds)
}

func TestLoad_NoCredentials(t *testing.T) {
	_, err := auth.Load(afero.NewMemMapFs(), "/missing.yaml", nil)
	assert.ErrorIs(t, err, auth.ErrNoCredentials)

	fs := afero.NewMemMapFs()
	test.CreateTestFile(t, fs, "/creds.yaml", "user: me@example.com\n")
	_, err = auth.Load(fs, "/creds.yaml", nil)
	assert.ErrorIs(t, err, auth.ErrNoCredentials)
}

func TestLoad_Malformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	test.CreateTestFile(t, fs, "/creds.yaml", "password: nope\n")

	_, err := auth.Load(fs, "/creds.yaml", nil)
	assert.ErrorContains(t, err, "error parsing /creds.yaml")
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	creds := auth.Credentials{Username: "me@example.com", APIKey: "secret"}

	require.NoError(t, auth.Save(fs, "/home/me/.hk/credentials.yaml", creds))

	info, err := fs.Stat("/home/me/.hk/credentials.yaml")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	loaded, err := auth.Load(fs, "/home/me/.hk/credentials.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, creds, loaded)
}
