package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 60*time.Second, cfg.Navigation.Timeout)
	assert.Equal(t, 7*time.Second, cfg.Navigation.Settle)
	assert.Equal(t, 3, cfg.Discovery.MinFields)
	assert.Equal(t, []string{"/contact", "/contact-us"}, cfg.Navigation.ContactPaths)
	assert.Equal(t, "console", cfg.Logger.Format)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigFromViperOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("browser.headless", false)
	v.Set("navigation.timeout", "90s")
	v.Set("discovery.min_fields", 2)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 90*time.Second, cfg.Navigation.Timeout)
	assert.Equal(t, 2, cfg.Discovery.MinFields)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad logger format", func(c *Config) { c.Logger.Format = "xml" }},
		{"zero navigation timeout", func(c *Config) { c.Navigation.Timeout = 0 }},
		{"negative settle", func(c *Config) { c.Navigation.Settle = -time.Second }},
		{"zero min fields", func(c *Config) { c.Discovery.MinFields = 0 }},
		{"zero attempts", func(c *Config) { c.Discovery.Attempts = 0 }},
		{"empty screenshot dir", func(c *Config) { c.Screenshots.Dir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
