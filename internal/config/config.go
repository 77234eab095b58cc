// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	APIPort   int    `mapstructure:"API_PORT"`
	AuthToken string `mapstructure:"AUTH_TOKEN"`
	LogDir    string `mapstructure:"LOG_DIR"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	GinMode   string `mapstructure:"GIN_MODE"`

	// --- Log retrieval limits ---
	DefaultLines    int    `mapstructure:"DEFAULT_LINES"`
	MaxLinesLimit   int    `mapstructure:"MAX_LINES_LIMIT"` // 0 disables the upper bound
	AllowedPatterns string `mapstructure:"ALLOWED_PATTERNS"`

	// --- HTTP hardening ---
	ReadTimeout    time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"WRITE_TIMEOUT"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	TrustedProxies string        `mapstructure:"TRUSTED_PROXIES"`

	// --- TLS ---
	TLSEnable   bool   `mapstructure:"TLS_ENABLE"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

// flagKeys maps CLI flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"port":      "API_PORT",
	"token":     "AUTH_TOKEN",
	"log-dir":   "LOG_DIR",
	"lines":     "DEFAULT_LINES",
	"max-lines": "MAX_LINES_LIMIT",
	"log-level": "LOG_LEVEL",
}

// Load builds the configuration from defaults, the optional env file, the process
// environment and any flags that were set on the command line, in increasing
// order of precedence. flags may be nil.
func Load(envFile string, flags *pflag.FlagSet) (*Config, error) {
	if envFile != "" {
		// A missing env file is fine, rely on defaults/env vars
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// --- Set Defaults ---
	v.SetDefault("API_PORT", 8000)
	v.SetDefault("AUTH_TOKEN", "")
	v.SetDefault("LOG_DIR", "/var/log")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DEFAULT_LINES", 1000)
	v.SetDefault("MAX_LINES_LIMIT", 0)
	v.SetDefault("ALLOWED_PATTERNS", "")
	v.SetDefault("READ_TIMEOUT", 15*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 60*time.Second)
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("TLS_ENABLE", false)
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise only fail at request time.
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API_PORT %d", c.APIPort)
	}
	if c.LogDir == "" {
		return errors.New("LOG_DIR must not be empty")
	}
	if c.DefaultLines <= 0 {
		return fmt.Errorf("DEFAULT_LINES must be positive, got %d", c.DefaultLines)
	}
	if c.MaxLinesLimit < 0 {
		return fmt.Errorf("MAX_LINES_LIMIT must not be negative, got %d", c.MaxLinesLimit)
	}
	if c.MaxLinesLimit > 0 && c.DefaultLines > c.MaxLinesLimit {
		return fmt.Errorf("DEFAULT_LINES (%d) exceeds MAX_LINES_LIMIT (%d)", c.DefaultLines, c.MaxLinesLimit)
	}
	if c.TLSEnable && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return errors.New("TLS is enabled but TLS_CERT_FILE or TLS_KEY_FILE is not set")
	}
	return nil
}

// Patterns returns the ALLOWED_PATTERNS list with blanks removed.
func (c *Config) Patterns() []string {
	return splitList(c.AllowedPatterns)
}

// Proxies returns the TRUSTED_PROXIES list. A nil result with ok=false means the
// value was empty and gin's default (trust all) applies; the literal "nil" disables
// proxy trust and yields nil with ok=true.
func (c *Config) Proxies() (proxies []string, ok bool) {
	switch strings.TrimSpace(c.TrustedProxies) {
	case "":
		return nil, false
	case "nil":
		return nil, true
	}
	return splitList(c.TrustedProxies), true
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
