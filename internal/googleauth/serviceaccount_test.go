package googleauth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/puchtools/puchcal/internal/fault"
)

func TestNewServiceAccountProvider_MissingKey(t *testing.T) {
	_, err := NewServiceAccountProvider(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindAuth))
}

func TestNewServiceAccountProvider_InvalidKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"unknown"}`), 0o600))

	_, err := NewServiceAccountProvider(context.Background(), path)
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindAuth))
}

func TestServiceAccountProvider_ReusesToken(t *testing.T) {
	static := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "sa-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	})
	provider := &ServiceAccountProvider{ts: oauth2.ReuseTokenSource(nil, static)}

	first, err := provider.Token(context.Background())
	require.NoError(t, err)
	second, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.AccessToken, second.AccessToken)
}

func TestTokenSourceAdapter(t *testing.T) {
	static := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "sa-token", TokenType: "Bearer"})
	provider := &ServiceAccountProvider{ts: static}

	ts := TokenSource(context.Background(), provider)
	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "sa-token", token.AccessToken)
}
