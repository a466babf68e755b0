// Package googleauth provides Google API credentials for the calendar
// client.
//
// Two variants exist:
//
//   - ServiceAccountProvider mints tokens from a service account key
//     file, non-interactively. Pair it with GrantWriterAccess so the
//     account can write to a user's calendar.
//   - FileTokenProvider serves tokens from a JSON cache file written by
//     the interactive consent flow, refreshing and re-persisting them
//     as needed.
//
// Both satisfy TokenProvider, which the rest of the codebase depends
// on. Raw token material is never logged.
package googleauth
