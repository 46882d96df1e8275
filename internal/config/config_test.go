package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Providers.WeatherAPIKey = "key"
	return cfg
}

func TestNormalizeDefaultsToLongpoll(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "webhook"
	assert.Error(t, Normalize(cfg))

	cfg.Webhook.URL = "https://bot.example.com/bot"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	assert.NoError(t, Normalize(cfg))
}

func TestNormalizeRejectsMissingSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	assert.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Providers.WeatherAPIKey = ""
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeValidatesAdmins(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Admins = []int64{10, 20}
	assert.NoError(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Telegram.Admins = []int64{10, 10}
	assert.Error(t, Normalize(cfg))

	cfg = validConfig()
	cfg.Telegram.Admins = []int64{0}
	assert.Error(t, Normalize(cfg))
}

func TestIsAdmin(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Admins = []int64{10, 20}

	assert.True(t, cfg.IsAdmin(10))
	assert.False(t, cfg.IsAdmin(30))
}
