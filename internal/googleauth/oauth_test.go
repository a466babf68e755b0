package googleauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/puchtools/puchcal/internal/fault"
)

func TestSaveLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	token := &oauth2.Token{
		AccessToken:  "access-123",
		TokenType:    "Bearer",
		RefreshToken: "refresh-456",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, SaveToken(path, token))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
}

func TestLoadToken_Missing(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindAuth))
}

func TestLoadToken_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := LoadToken(path)
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindAuth))
}

func TestFileTokenProvider_ValidToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	token := &oauth2.Token{
		AccessToken:  "still-valid",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
	require.NoError(t, SaveToken(path, token))

	provider := NewFileTokenProvider(OAuthConfig("id", "secret", ""), path)

	first, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "still-valid", first.AccessToken)

	// A second call before expiry yields the same token.
	second, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.AccessToken, second.AccessToken)
}

func TestFileTokenProvider_MissingCache(t *testing.T) {
	provider := NewFileTokenProvider(OAuthConfig("id", "secret", ""), filepath.Join(t.TempDir(), "nope.json"))

	_, err := provider.Token(context.Background())
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindAuth))
}

func TestFileTokenProvider_RefreshPersists(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "refreshed-token",
			"token_type":    "Bearer",
			"refresh_token": "refresh",
			"expires_in":    3600,
		})
	}))
	defer tokenServer.Close()

	path := filepath.Join(t.TempDir(), "token.json")
	expired := &oauth2.Token{
		AccessToken:  "stale",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Hour),
	}
	require.NoError(t, SaveToken(path, expired))

	config := OAuthConfig("id", "secret", "")
	config.Endpoint = oauth2.Endpoint{TokenURL: tokenServer.URL}

	provider := NewFileTokenProvider(config, path)
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", token.AccessToken)

	// The refreshed token is written back to the cache file.
	persisted, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", persisted.AccessToken)
}
