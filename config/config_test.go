package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "loancalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	conf, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", conf.Server.Address)
	assert.Equal(t, DatabaseDriverSQLite, conf.Database.Driver)
	assert.Equal(t, "loan_data.db", conf.Database.Path)
	assert.Equal(t, SessionBackendMemory, conf.Sessions.Backend)
	assert.Equal(t, time.Hour, conf.Admin.TokenTTL)
	assert.Empty(t, conf.Admin.PasswordHash)
	assert.Equal(t, 5, conf.RateLimit.Capacity)
	assert.Equal(t, time.Minute, conf.RateLimit.Window)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
  read_timeout: 5s
database:
  driver: memory
admin:
  token_ttl: 30m
ratelimit:
  capacity: 10
  window: 30s
`)
	t.Setenv("LOANCALC_ADMIN_PASSWORD_HASH", "abc123")
	t.Setenv("LOANCALC_SERVER_ADDRESS", ":7070")

	conf, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", conf.Server.Address)
	assert.Equal(t, 5*time.Second, conf.Server.ReadTimeout)
	assert.Equal(t, DatabaseDriverMemory, conf.Database.Driver)
	assert.Equal(t, 30*time.Minute, conf.Admin.TokenTTL)
	assert.Equal(t, "abc123", conf.Admin.PasswordHash)
	assert.Equal(t, 10, conf.RateLimit.Capacity)
	assert.Equal(t, 30*time.Second, conf.RateLimit.Window)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: postgres\n")

	_, err := Load(viper.New(), path)

	assert.ErrorContains(t, err, "invalid database.driver")
}

func TestValidate(t *testing.T) {
	valid := func() Configuration {
		return Configuration{
			Database:  DatabaseConfig{Driver: DatabaseDriverSQLite, Path: "x.db"},
			Sessions:  SessionsConfig{Backend: SessionBackendMemory},
			Admin:     AdminConfig{TokenTTL: time.Hour},
			RateLimit: RateLimitConfig{Capacity: 5, Window: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr bool
	}{
		{"valid", func(*Configuration) {}, false},
		{"sqlite without path", func(c *Configuration) { c.Database.Path = "" }, true},
		{"redis without address", func(c *Configuration) {
			c.Sessions.Backend = SessionBackendRedis
			c.Sessions.RedisAddr = ""
		}, true},
		{"unknown session backend", func(c *Configuration) { c.Sessions.Backend = "memcached" }, true},
		{"zero token ttl", func(c *Configuration) { c.Admin.TokenTTL = 0 }, true},
		{"zero rate limit", func(c *Configuration) { c.RateLimit.Capacity = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_SearchesHomeConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "loancalc")
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, DefaultConfigName+".yaml"),
		[]byte("server:\n  address: \":6060\"\n"),
		0600,
	))

	conf, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":6060", conf.Server.Address)
}
