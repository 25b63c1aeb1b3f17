// Package httputil provides the shared HTTP client used by the registry
// and hosting API clients.
//
// The client is a thin wrapper around net/http that applies default
// headers to every request (crates.io requires a User-Agent identifying
// the tool) and maps response statuses onto sentinel errors so callers
// can distinguish "not found" from other failures with errors.Is.
//
// Requests are single-shot and synchronous: there is no retry and no
// response caching. The only bound is the client timeout.
package httputil
