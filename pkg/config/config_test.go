package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "/api/v1", cfg.APIPrefix)
	require.NotEmpty(t, cfg.EventName)
	require.Equal(t, int64(10*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	require.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	require.False(t, cfg.Mail.Enabled)
	require.Equal(t, 5*time.Minute, cfg.Stats.CacheTTL)
}

func TestParseDuration(t *testing.T) {
	require.Equal(t, time.Minute, parseDuration("1m", time.Hour))
	require.Equal(t, time.Hour, parseDuration("", time.Hour))
	require.Equal(t, time.Hour, parseDuration("garbage", time.Hour))
}

func TestSplitAndTrim(t *testing.T) {
	require.Nil(t, splitAndTrim(""))
	require.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,"))
}
