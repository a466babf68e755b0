// Package fault defines the error taxonomy used across puchcal.
//
// Every boundary error is classified into one of five kinds: auth,
// validation, not_found, remote and format. Tool handlers report the
// kind to the AI platform so it can decide whether to inform the user
// or re-prompt; nothing in puchcal retries a failed operation.
//
// FromGoogleAPI maps errors returned by the Google API client libraries
// to the taxonomy, preserving the upstream status code and message.
package fault
