package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: course-choose-test
  secret: from-file
  http:
    host: 127.0.0.1
    port: 9090
log:
  level: debug
jwt:
  issuer: test-issuer
  accessTokenTTLMin: 30
db:
  driver: sqlite
  dsn: "file::memory:"
redis:
  addr: ""
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "course-choose-test", c.App.Name)
	assert.Equal(t, "from-file", c.App.Secret)
	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, 10, c.App.HTTP.WriteTimeoutSec) // 默认值
	assert.Equal(t, 8081, c.App.Admin.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 30*time.Minute, c.JWT.TTL())
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, 60, c.Redis.UserTTLSec)
	assert.EqualValues(t, 300, c.Limits.MaxInFlight)
	assert.EqualValues(t, 1024, c.Limits.MaxBodyKB)

	_, w, _ := c.App.Admin.Timeouts()
	assert.Equal(t, 10*time.Second, w)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_APP_SECRET", "from-env")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_LIMITS_MAXINFLIGHT", "7")

	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.App.Secret)
	assert.Equal(t, "warn", c.Log.Level)
	assert.EqualValues(t, 7, c.Limits.MaxInFlight)
}

func TestLoad_TokenTTLDefaultsToFinite(t *testing.T) {
	c, err := Load(writeConfig(t, "app:\n  secret: s\n"))
	require.NoError(t, err)
	assert.Equal(t, 120*time.Minute, c.JWT.TTL())

	c, err = Load(writeConfig(t, "app:\n  secret: s\njwt:\n  accessTokenTTLMin: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, c.JWT.TTL())
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  name: x\n"))
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
