// Package database provides SQLite-based storage for neocc.
//
// The database holds two tables:
//   - documents: raw response bodies keyed on URL, served by DocumentCache
//     while younger than the configured max age
//   - list_snapshots: the designators of saved list queries, used by the
//     compare command to report objects added to or removed from a list
//
// The driver is modernc.org/sqlite, so no cgo toolchain is needed.
package database
