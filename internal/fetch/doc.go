// Package fetch downloads NEOCC resources over HTTPS.
//
// A Client applies a per-request timeout, a request-rate limit shared by
// every goroutine using it, and an optional document cache. Failures are
// classified with the sentinel errors of the model package:
//
//   - network failures and 5xx responses wrap model.ErrTransientServer
//   - 404 responses wrap model.ErrDataUnavailable
//   - other non-2xx responses and oversized bodies wrap
//     model.ErrMalformedContent
//
// The query layer decides what to retry based on that classification.
package fetch
