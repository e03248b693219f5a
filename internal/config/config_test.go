package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
read_timeout = 5

[database]
host = "db.local"
port = 6432
user = "conflicts"
password = "secret"
dbname = "cleaning"
sslmode = "require"

[logs]
level = "debug"
file = "/tmp/conflicts.log"

[metrics]
enabled = true
service_name = "conflicts"

[cache]
enabled = true
addr = "redis:6379"
db = 2
ttl = 120

[detection]
max_range_days = 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Server.WriteTimeout)
	assert.Equal(t, "host=db.local port=6432 user=conflicts password=secret dbname=cleaning sslmode=require", cfg.Database.DSN())
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "conflicts", cfg.Metrics.ServiceName)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 2, cfg.Cache.DB)
	assert.Equal(t, "conflicts:", cfg.Cache.KeyPrefix)
	assert.Equal(t, 120, int(cfg.Cache.TTLDuration().Seconds()))
	assert.Equal(t, 14, cfg.Detection.MaxRangeDays)
	assert.Equal(t, uint64(10000), cfg.Detection.TravelMatrixLimit)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "cleaning"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
	assert.Equal(t, 31, cfg.Detection.MaxRangeDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "cleaning"
password = "from-file"

[cache]
addr = "localhost:6379"
`)
	t.Setenv("CONFLICTS_DB_PASSWORD", "from-env")
	t.Setenv("CONFLICTS_DB_PORT", "15432")
	t.Setenv("CONFLICTS_REDIS_ADDR", "cache:6380")
	t.Setenv("CONFLICTS_REDIS_DB", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, "cache:6380", cfg.Cache.Addr)
	assert.Equal(t, 0, cfg.Cache.DB)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("broken toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[server\nhttp_port = 1"))
		assert.Error(t, err)
	})

	t.Run("missing database host", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[database]\ndbname = \"x\"\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[server]\nhttp_port = 70000\n[database]\nhost = \"h\"\ndbname = \"x\"\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("negative range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[database]\nhost = \"h\"\ndbname = \"x\"\n[detection]\nmax_range_days = -1\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
