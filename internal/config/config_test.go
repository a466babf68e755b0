package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puchtools/puchcal/internal/fault"
)

func TestLoad(t *testing.T) {
	t.Setenv("PUCH_TOKEN", "test-token")
	t.Setenv("MY_PHONE_NUMBER", "919876543210")
	t.Setenv("CALENDAR_ID", "")
	t.Setenv("SERVICE_ACCOUNT_FILE", "")
	t.Setenv("TOKEN_CACHE_FILE", "")
	t.Setenv("RESUME_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.AuthToken)
	assert.Equal(t, "919876543210", cfg.PhoneNumber)
	assert.Equal(t, DefaultCalendarID, cfg.CalendarID)
	assert.Equal(t, DefaultServiceAccountFile, cfg.ServiceAccountFile)
	assert.Equal(t, DefaultTokenCacheFile, cfg.TokenCacheFile)
	assert.False(t, cfg.HasResume())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PUCH_TOKEN", "test-token")
	t.Setenv("MY_PHONE_NUMBER", "919876543210")
	t.Setenv("CALENDAR_ID", "team@example.com")
	t.Setenv("RESUME_FILE", "/data/resume.pdf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "team@example.com", cfg.CalendarID)
	assert.Equal(t, "/data/resume.pdf", cfg.ResumeFile)
	assert.True(t, cfg.HasResume())
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("PUCH_TOKEN", "")
	t.Setenv("MY_PHONE_NUMBER", "919876543210")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Contains(t, err.Error(), "PUCH_TOKEN")
}

func TestLoad_MissingPhone(t *testing.T) {
	t.Setenv("PUCH_TOKEN", "test-token")
	t.Setenv("MY_PHONE_NUMBER", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindValidation))
	assert.Contains(t, err.Error(), "MY_PHONE_NUMBER")
}

func TestHasServiceAccount(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "sa.json")
	require.NoError(t, os.WriteFile(keyFile, []byte("{}"), 0o600))

	cfg := &Config{ServiceAccountFile: keyFile}
	assert.True(t, cfg.HasServiceAccount())

	cfg.ServiceAccountFile = filepath.Join(dir, "missing.json")
	assert.False(t, cfg.HasServiceAccount())

	cfg.ServiceAccountFile = ""
	assert.False(t, cfg.HasServiceAccount())
}

func TestHasOAuthClient(t *testing.T) {
	cfg := &Config{OAuthClientID: "id", OAuthClientSecret: "secret"}
	assert.True(t, cfg.HasOAuthClient())

	cfg.OAuthClientSecret = ""
	assert.False(t, cfg.HasOAuthClient())
}
