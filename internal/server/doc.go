// Package server holds the runtime plumbing around the MCP server: the
// shared ServerContext with lazily created dependencies, the guarded
// HTTP front for the streamable-http transport, health endpoints and
// the dedicated Prometheus metrics server.
package server
