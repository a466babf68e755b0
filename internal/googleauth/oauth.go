package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/puchtools/puchcal/internal/fault"
)

// OAuthConfig builds the OAuth2 configuration for the interactive
// consent flow, scoped to the Calendar API.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{calendar.CalendarScope},
	}
}

// LoadToken reads a cached OAuth token from a JSON file.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fault.Wrap(fault.KindAuth, err, "no cached token at %q, run the auth command first", path)
		}
		return nil, fault.Wrap(fault.KindAuth, err, "opening token cache %q", path)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fault.Wrap(fault.KindAuth, err, "decoding token cache %q", path)
	}
	return token, nil
}

// SaveToken persists an OAuth token to a JSON file readable only by
// the owner.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating token cache %q: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("encoding token cache %q: %w", path, err)
	}
	return nil
}

// FileTokenProvider issues tokens from a single JSON cache file written
// by the consent flow. Refresh happens through the OAuth2 config; a
// refreshed token is written back so the next run skips the refresh.
type FileTokenProvider struct {
	config *oauth2.Config
	path   string

	mu   sync.Mutex
	last *oauth2.Token
	ts   oauth2.TokenSource
}

// NewFileTokenProvider creates a provider backed by the token cache at
// path.
func NewFileTokenProvider(config *oauth2.Config, path string) *FileTokenProvider {
	return &FileTokenProvider{config: config, path: path}
}

// Token returns a valid token from the cache file, refreshing and
// re-persisting it when expired.
func (p *FileTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ts == nil {
		cached, err := LoadToken(p.path)
		if err != nil {
			return nil, err
		}
		p.last = cached
		p.ts = p.config.TokenSource(ctx, cached)
	}

	token, err := p.ts.Token()
	if err != nil {
		return nil, fault.Wrap(fault.KindAuth, err, "refreshing cached token")
	}

	if token.AccessToken != p.last.AccessToken {
		if err := SaveToken(p.path, token); err != nil {
			return nil, err
		}
		p.last = token
	}
	return token, nil
}
