// Package calendar wraps the Google Calendar API with the four event
// operations exposed as tools: create, list, update and delete.
//
// The remote service is the sole source of truth. There is no local
// cache and no retry logic; failures map to the fault taxonomy and
// surface synchronously. UpdateEvent replaces the full event record,
// so callers re-supply every field they want to keep.
package calendar
