package googleauth

import (
	"context"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/puchtools/puchcal/internal/fault"
)

// ServiceAccountProvider issues tokens from a Google service account
// key file. Non-interactive: tokens are minted via a signed JWT and
// reused until they expire, nothing is persisted.
type ServiceAccountProvider struct {
	ts oauth2.TokenSource
}

// NewServiceAccountProvider reads the key file and prepares a reusable
// token source scoped to the Calendar API.
func NewServiceAccountProvider(ctx context.Context, keyFile string) (*ServiceAccountProvider, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fault.Wrap(fault.KindAuth, err, "reading service account key %q", keyFile)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fault.Wrap(fault.KindAuth, err, "parsing service account key %q", keyFile)
	}

	return &ServiceAccountProvider{
		ts: oauth2.ReuseTokenSource(nil, jwtConfig.TokenSource(ctx)),
	}, nil
}

// Token returns a valid token, minting a fresh one only when the cached
// one has expired.
func (p *ServiceAccountProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := p.ts.Token()
	if err != nil {
		return nil, fault.Wrap(fault.KindAuth, err, "obtaining service account token")
	}
	return token, nil
}
