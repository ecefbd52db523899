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

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"

[auth]
jwt_secret = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Redis.CatalogTTL)
	assert.Equal(t, "localbiz.bookings", cfg.MQ.Exchange)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8080

[database]
driver = "memory"

[auth]
jwt_secret = "from-file"
`)

	t.Setenv("LOCALBIZ_SERVER_HTTP_PORT", "9090")
	t.Setenv("LOCALBIZ_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "postgres without host",
			content: `
[database]
driver = "postgres"
[auth]
jwt_secret = "s"
`,
		},
		{
			name: "jwt without secret",
			content: `
[database]
driver = "memory"
`,
		},
		{
			name: "remote without url",
			content: `
[database]
driver = "memory"
[auth]
mode = "remote"
`,
		},
		{
			name: "unknown timezone",
			content: `
[database]
driver = "memory"
[auth]
jwt_secret = "s"
[booking]
timezone = "Mars/Olympus"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "localbiz", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=localbiz sslmode=disable", cfg.DSN())
}
