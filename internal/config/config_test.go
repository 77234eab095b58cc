package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntP("port", "p", 8000, "")
	fs.StringP("token", "t", "", "")
	fs.String("log-dir", "/var/log", "")
	fs.Int("lines", 1000, "")
	fs.Int("max-lines", 0, "")
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Empty(t, cfg.AuthToken)
	assert.Equal(t, "/var/log", cfg.LogDir)
	assert.Equal(t, 1000, cfg.DefaultLines)
	assert.Zero(t, cfg.MaxLinesLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.TLSEnable)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("AUTH_TOKEN", "secret")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("ALLOWED_PATTERNS", "*.log, nginx/** ,")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, "secret", cfg.AuthToken)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, []string{"*.log", "nginx/**"}, cfg.Patterns())
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_DIR=/srv/logs\nDEFAULT_LINES=50\n"), 0o644))
	// godotenv writes straight into the process environment
	t.Setenv("LOG_DIR", "")
	t.Setenv("DEFAULT_LINES", "")
	require.NoError(t, os.Unsetenv("LOG_DIR"))
	require.NoError(t, os.Unsetenv("DEFAULT_LINES"))

	cfg, err := Load(envFile, nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/logs", cfg.LogDir)
	assert.Equal(t, 50, cfg.DefaultLines)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"), nil)
	assert.NoError(t, err)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("AUTH_TOKEN", "from-env")

	cfg, err := Load("", newFlags(t, "-p", "9100", "--log-dir", "/tmp/logs"))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.APIPort)
	assert.Equal(t, "/tmp/logs", cfg.LogDir)
	// unset flags fall through to the environment
	assert.Equal(t, "from-env", cfg.AuthToken)
}

func TestTokenFlag(t *testing.T) {
	cfg, err := Load("", newFlags(t, "-t", "secret"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.AuthToken)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{APIPort: 8000, LogDir: "/var/log", DefaultLines: 1000}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	tests := map[string]func(c *Config){
		"port zero":          func(c *Config) { c.APIPort = 0 },
		"port too large":     func(c *Config) { c.APIPort = 70000 },
		"empty log dir":      func(c *Config) { c.LogDir = "" },
		"non-positive lines": func(c *Config) { c.DefaultLines = 0 },
		"negative limit":     func(c *Config) { c.MaxLinesLimit = -1 },
		"default over limit": func(c *Config) { c.MaxLinesLimit = 10 },
		"tls without files":  func(c *Config) { c.TLSEnable = true },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestProxies(t *testing.T) {
	c := Config{}
	proxies, ok := c.Proxies()
	assert.False(t, ok)
	assert.Nil(t, proxies)

	c.TrustedProxies = "nil"
	proxies, ok = c.Proxies()
	assert.True(t, ok)
	assert.Nil(t, proxies)

	c.TrustedProxies = "10.0.0.1, 10.0.0.2"
	proxies, ok = c.Proxies()
	assert.True(t, ok)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, proxies)
}
