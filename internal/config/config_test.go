package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 8090

[database]
host = "db"
user = "showtime"
password = "from-file"
dbname = "showtime"

[logs]
level = "debug"

[catalog_service]
url = "http://catalog:8080"

[auth]
jwt_secret = "file-secret"

[scheduling]
timezone = "Asia/Kolkata"

[redis]
enabled = true
seat_map_ttl = 10
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Database.TxMaxAttempts)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10, cfg.Redis.SeatMapTTL)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HTTP_PORT", "9000")

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_InvalidEnvInteger(t *testing.T) {
	t.Setenv("DB_PORT", "five")

	_, err := Load(writeConfig(t, sampleTOML))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
dbname = "showtime"
[catalog_service]
url = "http://catalog"
[scheduling]
timezone = "UTC"
`))
	assert.ErrorContains(t, err, "jwt_secret")

	_, err = Load(writeConfig(t, sampleTOML+"\n[tasks]\nmax_concurrent = 0\n"))
	assert.ErrorContains(t, err, "max_concurrent")

	_, err = Load(writeConfig(t, strings.Replace(sampleTOML, "seat_map_ttl = 10", "seat_map_ttl = 0", 1)))
	assert.ErrorContains(t, err, "seat_map_ttl")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
