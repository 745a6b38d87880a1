package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8080/api", c.APIBaseURL)
	assert.Equal(t, "http://localhost:3000", c.SiteURL)
	assert.Equal(t, 60*time.Second, c.ExpiryCheckInterval)
	assert.Equal(t, 7*24*time.Hour, c.CookieMaxAge)
	assert.True(t, c.CapCookieToToken)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "evmarket.db", cfg.DBPath)
	assert.Equal(t, 60*time.Second, cfg.ExpiryCheckInterval)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"db_path":               "from-json.db",
		"expiry_check_interval": "5s",
	})
	os.Args = []string{"testbin", "-c", path, "-i", "30"}

	cfg := LoadConfig()

	assert.Equal(t, "from-json.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.ExpiryCheckInterval)
}
