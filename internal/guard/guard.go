package guard

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/puchtools/puchcal/internal/fault"
	"github.com/puchtools/puchcal/internal/logging"
)

// PhoneHeader carries the caller's phone number on HTTP requests.
const PhoneHeader = "X-Caller-Phone"

// Guard gates every tool invocation on a shared secret and the owner's
// phone number. There are no sessions and no user directory: one
// secret, one phone number, one user.
type Guard struct {
	Secret      string
	PhoneNumber string
}

// New creates a guard for the given secret and phone number.
func New(secret, phoneNumber string) *Guard {
	return &Guard{Secret: secret, PhoneNumber: phoneNumber}
}

// Authorize checks the presented bearer token and caller phone number.
// Comparisons are constant-time. Any mismatch, including empty inputs,
// is an auth fault; callers must not dispatch the tool.
func (g *Guard) Authorize(bearerToken, callerPhone string) error {
	if g.Secret == "" || g.PhoneNumber == "" {
		return fault.New(fault.KindAuth, "guard is not configured")
	}
	if bearerToken == "" {
		return fault.New(fault.KindAuth, "missing bearer token")
	}
	if callerPhone == "" {
		return fault.New(fault.KindAuth, "missing caller phone number")
	}

	tokenOK := subtle.ConstantTimeCompare([]byte(bearerToken), []byte(g.Secret)) == 1
	phoneOK := subtle.ConstantTimeCompare([]byte(callerPhone), []byte(g.PhoneNumber)) == 1
	if !tokenOK || !phoneOK {
		return fault.New(fault.KindAuth, "credentials do not match")
	}
	return nil
}

// Middleware wraps an HTTP handler with the authorization check. The
// bearer token comes from the Authorization header, the caller identity
// from the X-Caller-Phone header. Denied requests get a 401 JSON body.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		phone := r.Header.Get(PhoneHeader)

		if err := g.Authorize(token, phone); err != nil {
			slog.Warn("request denied",
				logging.Caller(phone),
				slog.String("remote_addr", r.RemoteAddr),
				logging.Err(err))
			writeUnauthorized(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return auth[len(prefix):]
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}
