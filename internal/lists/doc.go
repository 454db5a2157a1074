// Package lists resolves NEOCC list identifiers to their remote files and
// parses the four list formats published by the portal: plain designator
// lists, pipe-delimited risk and close-approach tables, the fixed-width
// priority lists and the whitespace-delimited close-encounter list.
//
// Parsers are pure functions of the decoded document text.
package lists
