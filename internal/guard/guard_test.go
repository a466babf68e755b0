package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puchtools/puchcal/internal/fault"
)

func TestAuthorize(t *testing.T) {
	g := New("secret-token", "919876543210")

	tests := []struct {
		name   string
		token  string
		phone  string
		wantOK bool
	}{
		{"valid", "secret-token", "919876543210", true},
		{"wrong token", "other-token", "919876543210", false},
		{"wrong phone", "secret-token", "911111111111", false},
		{"both wrong", "other-token", "911111111111", false},
		{"empty token", "", "919876543210", false},
		{"empty phone", "secret-token", "", false},
		{"both empty", "", "", false},
		{"token prefix only", "secret", "919876543210", false},
		{"phone prefix only", "secret-token", "9198", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Authorize(tt.token, tt.phone)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, fault.KindAuth))
			}
		})
	}
}

func TestAuthorize_UnconfiguredGuard(t *testing.T) {
	g := New("", "")
	// An empty secret must never authorize an empty token.
	err := g.Authorize("", "")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindAuth))
}

func TestMiddleware(t *testing.T) {
	g := New("secret-token", "919876543210")

	var reached bool
	handler := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		phone      string
		wantStatus int
	}{
		{"valid", "Bearer secret-token", "919876543210", http.StatusOK},
		{"wrong token", "Bearer nope", "919876543210", http.StatusUnauthorized},
		{"missing auth header", "", "919876543210", http.StatusUnauthorized},
		{"not bearer", "Basic secret-token", "919876543210", http.StatusUnauthorized},
		{"missing phone header", "Bearer secret-token", "", http.StatusUnauthorized},
		{"wrong phone", "Bearer secret-token", "911111111111", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.phone != "" {
				req.Header.Set(PhoneHeader, tt.phone)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestBearerToken_CaseInsensitiveScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "bearer secret-token")
	assert.Equal(t, "secret-token", bearerToken(req))
}
