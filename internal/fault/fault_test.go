package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestKindOf(t *testing.T) {
	err := New(KindValidation, "start must be before end")
	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindRemote))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := New(KindNotFound, "event %q not found", "abc")
	outer := fmt.Errorf("delete failed: %w", inner)

	assert.Equal(t, KindNotFound, KindOf(outer))
	assert.True(t, IsKind(outer, KindNotFound))
}

func TestKindOf_NonFault(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindRemote, cause, "list events")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "list events")
}

func TestFromGoogleAPI(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
		status   int
	}{
		{"not found", &googleapi.Error{Code: 404, Message: "Not Found"}, KindNotFound, 404},
		{"gone", &googleapi.Error{Code: 410, Message: "Gone"}, KindNotFound, 410},
		{"unauthorized", &googleapi.Error{Code: 401, Message: "Unauthorized"}, KindAuth, 401},
		{"forbidden", &googleapi.Error{Code: 403, Message: "Forbidden"}, KindAuth, 403},
		{"server error", &googleapi.Error{Code: 500, Message: "Backend Error"}, KindRemote, 500},
		{"rate limited", &googleapi.Error{Code: 429, Message: "Too Many Requests"}, KindRemote, 429},
		{"network error", errors.New("dial tcp: connection refused"), KindRemote, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := FromGoogleAPI(tt.err, "operation failed")
			assert.Equal(t, tt.expected, mapped.Kind)
			assert.Equal(t, tt.status, mapped.Status)
			assert.ErrorIs(t, mapped, tt.err)
		})
	}
}

func TestFromGoogleAPI_WrappedUpstream(t *testing.T) {
	gerr := &googleapi.Error{Code: 404, Message: "Not Found"}
	wrapped := fmt.Errorf("calendar call: %w", gerr)

	mapped := FromGoogleAPI(wrapped, "get event")
	assert.Equal(t, KindNotFound, mapped.Kind)
	assert.Equal(t, 404, mapped.Status)
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindRemote, Message: "create event", Status: 500}
	assert.Equal(t, "remote (500): create event", err.Error())

	err = New(KindAuth, "bearer token mismatch")
	assert.Equal(t, "auth: bearer token mismatch", err.Error())
}
