package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LoadConfig runs once per process, so everything is asserted from a single
// load.
func TestGetConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
APP_PORT: "8080"
DB_HOST: "db.internal"
JWT_TTL: "2h"
RATE_LIMIT_MAX: "not-a-number"
CORS_ORIGINS: "https://a.example, https://b.example ,"
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("IS_PROD", "true")

	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "override.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "Asia/Kolkata", GetConfig("APP_TIMEZONE"))
	assert.Equal(t, "true", GetConfig("IsProd"))
	assert.Equal(t, "", GetConfig("NO_SUCH_KEY"))

	assert.Equal(t, 2*time.Hour, GetConfigDuration("JWT_TTL"))
	assert.Equal(t, 10*time.Second, GetConfigDuration("REQUEST_TIMEOUT"))
	assert.Equal(t, 20, GetConfigInt("RATE_LIMIT_MAX"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetConfigList("CORS_ORIGINS"))
}
