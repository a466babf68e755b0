// Package cmd implements the command-line interface for puchcal.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the calendar tools
//   - auth: Run the one-time OAuth consent flow and cache the token
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
