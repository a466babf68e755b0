// Package calendar_tools provides the MCP tools for creating, listing,
// replacing and deleting Google Calendar events.
package calendar_tools
