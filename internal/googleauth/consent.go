package googleauth

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/puchtools/puchcal/internal/fault"
)

// ConsentFlow obtains a user credential interactively. Implementations
// decide how the authorization URL reaches the user and how the code
// comes back.
type ConsentFlow interface {
	Obtain(ctx context.Context) (*oauth2.Token, error)
}

// LocalConsentFlow runs a one-shot callback server on the loopback
// interface, prints the authorization URL and exchanges the returned
// code for a token. The state parameter is a random nonce verified on
// callback.
type LocalConsentFlow struct {
	Config *oauth2.Config

	// Addr is the listen address for the callback server. Defaults to
	// 127.0.0.1:0 (an ephemeral port).
	Addr string

	// AuthURLFunc receives the authorization URL once the callback
	// server is listening. Defaults to printing it on stderr.
	AuthURLFunc func(url string)
}

type callbackResult struct {
	code string
	err  error
}

// Obtain runs the consent flow to completion or until ctx is done.
func (f *LocalConsentFlow) Obtain(ctx context.Context) (*oauth2.Token, error) {
	addr := f.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting consent callback listener: %w", err)
	}
	defer listener.Close()

	state := uuid.NewString()
	results := make(chan callbackResult, 1)

	// Only the first callback counts; retries and prefetches after it
	// must not block their handler goroutines.
	report := func(result callbackResult) {
		select {
		case results <- result:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			report(callbackResult{err: fault.New(fault.KindAuth, "consent callback state mismatch")})
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			report(callbackResult{err: fault.New(fault.KindAuth, "consent callback missing code")})
			return
		}
		fmt.Fprintln(w, "Authorization received. You can close this tab.")
		report(callbackResult{code: code})
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(listener)
	defer srv.Close()

	config := *f.Config
	config.RedirectURL = fmt.Sprintf("http://%s/oauth/callback", listener.Addr().String())

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if f.AuthURLFunc != nil {
		f.AuthURLFunc(authURL)
	} else {
		fmt.Fprintf(os.Stderr, "Open this URL to authorize calendar access:\n\n%s\n\n", authURL)
	}

	var result callbackResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for consent callback: %w", ctx.Err())
	}
	if result.err != nil {
		return nil, result.err
	}

	token, err := config.Exchange(ctx, result.code)
	if err != nil {
		return nil, fault.Wrap(fault.KindAuth, err, "exchanging authorization code")
	}

	slog.Info("authorization complete")
	return token, nil
}

// GrantWriterAccess adds the service account as a writer on the user's
// calendar, so the non-interactive credential can manage events there.
func GrantWriterAccess(ctx context.Context, ts oauth2.TokenSource, calendarID, serviceAccountEmail string) error {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return fmt.Errorf("creating calendar service: %w", err)
	}

	rule := &calendar.AclRule{
		Role: "writer",
		Scope: &calendar.AclRuleScope{
			Type:  "user",
			Value: serviceAccountEmail,
		},
	}
	if _, err := svc.Acl.Insert(calendarID, rule).Context(ctx).Do(); err != nil {
		return fault.FromGoogleAPI(err, "granting writer access to %s", serviceAccountEmail)
	}

	slog.Info("granted calendar access", slog.String("calendar_id", calendarID), slog.String("grantee", serviceAccountEmail))
	return nil
}
