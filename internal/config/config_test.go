package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := newConfig(viper.New())

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultLingvoAPIURL, cfg.Lingvo.APIURL)
	assert.Equal(t, DefaultLingvoAuthURL, cfg.Lingvo.AuthURL)
	assert.Equal(t, 30*time.Second, cfg.Lingvo.Timeout)
	assert.Equal(t, DefaultSourceLang, cfg.Languages.Source)
	assert.Equal(t, DefaultDestinationLang, cfg.Languages.Destination)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.False(t, cfg.EnrichSync.Enabled)
	assert.Equal(t, "*/30 * * * *", cfg.EnrichSync.Schedule)
	assert.Empty(t, cfg.Auth.TokenHash)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("LINGVO_API_KEY", "secret")
	t.Setenv("LINGVO_TIMEOUT", "5s")
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_DST_LANG", "1031")
	t.Setenv("ENRICH_SYNC_ENABLED", "true")

	cfg := NewConfig()

	assert.Equal(t, "secret", cfg.Lingvo.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Lingvo.Timeout)
	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, 1031, cfg.Languages.Destination)
	assert.True(t, cfg.EnrichSync.Enabled)
}
