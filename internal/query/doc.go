// Package query routes list and object requests to the NEOCC portal.
//
// A query resolves its URL, fetches the document and parses it. Transient
// failures (network errors, 5xx answers and degenerate payloads) are
// retried once after a fixed delay; every other failure is final.
package query
