package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizePhone(t *testing.T) {
	hash := AnonymizePhone("+919876543210")
	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, "9876")
	assert.Contains(t, hash, "caller:")

	// Deterministic, so log entries can be correlated.
	assert.Equal(t, hash, AnonymizePhone("+919876543210"))
	assert.NotEqual(t, hash, AnonymizePhone("+919876543211"))
}

func TestAnonymizePhone_Empty(t *testing.T) {
	assert.Empty(t, AnonymizePhone(""))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))

	masked := SanitizeToken("super-secret-token")
	assert.NotContains(t, masked, "secret")
	assert.Equal(t, "[token:18 chars]", masked)
}

func TestErr_NilSafe(t *testing.T) {
	attr := Err(nil)
	// An empty group is omitted from output entirely.
	assert.Equal(t, "", attr.Key)
}

func TestStatusConstants(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess)
	assert.Equal(t, "error", StatusError)
}
