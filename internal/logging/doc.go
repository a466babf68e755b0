// Package logging provides structured logging utilities for puchcal.
//
// It centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog
// package.
//
// # Security Considerations
//
//   - Phone numbers are hashed before logging (the caller identity is
//     a WhatsApp number, which is PII)
//   - Bearer tokens and OAuth tokens are never logged directly; use
//     SanitizeToken when a token needs to be referenced at all
//
// Logs are written to stderr so that the stdio MCP transport keeps
// stdout reserved for the protocol stream.
package logging
