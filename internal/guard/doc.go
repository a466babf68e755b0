// Package guard implements the single-user access check: a static
// bearer token plus the owner's phone number, both compared in
// constant time. The HTTP middleware protects the MCP endpoint only;
// health and metrics endpoints stay open.
package guard
