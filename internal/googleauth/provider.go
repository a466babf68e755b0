package googleauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenProvider yields a valid, non-expired OAuth token for the Google
// Calendar API. Implementations refresh transparently; callers never
// see an expired token.
type TokenProvider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// providerSource adapts a TokenProvider to oauth2.TokenSource so it can
// feed oauth2.NewClient and the API client options.
type providerSource struct {
	ctx context.Context
	p   TokenProvider
}

func (s providerSource) Token() (*oauth2.Token, error) {
	return s.p.Token(s.ctx)
}

// TokenSource wraps a TokenProvider as an oauth2.TokenSource bound to
// the given context.
func TokenSource(ctx context.Context, p TokenProvider) oauth2.TokenSource {
	return providerSource{ctx: ctx, p: p}
}

// HTTPClient returns an HTTP client that authenticates every request
// with tokens from the provider.
func HTTPClient(ctx context.Context, p TokenProvider) *http.Client {
	return oauth2.NewClient(ctx, TokenSource(ctx, p))
}
