// Package table provides the typed tabular model shared by every NEOCC
// parser, together with the low-level readers that turn positional text
// into rows.
//
// A Table is an ordered list of column names plus rows of typed cells
// (Value). Cells inferred from text keep their source text, which is what
// Locate matches against. Locate is the mechanism parsers use to find
// anchors such as "! Object", "LSP" or "<p> </p>" whose row is not fixed.
//
// # Readers
//
//   - Lines / NonBlank split decoded text into physical lines
//   - SliceFixed cuts a line at explicit character offsets (ColSpec)
//   - InferColSpecs derives column spans from the union of non-blank
//     positions, the way fixed-width readers infer layouts
//   - Fields and SplitDelimited tokenize whitespace and separator formats
//
// # Dates
//
// DecimalYear converts a calendar instant to a fractional year using the
// actual length of that calendar year, and ParseDate accepts the date
// notations found in NEOCC lists.
package table
