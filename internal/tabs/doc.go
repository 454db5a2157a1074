// Package tabs builds the URLs of the per-object NEOCC resources and
// parses each of them into a model.TabResult variant.
//
// Text resources (impacts, observations, orbit properties, ephemerides and
// close approaches) are decoded positionally: fixed header lines are
// matched against regexp templates, variable offsets are discovered with
// table.Locate, and decode tables keyed on a discriminant (note present,
// RMSmag present, SOLUTION present, matrix dimension) select the shape.
//
// HTML resources (summary and physical properties) are walked with
// golang.org/x/net/html.
package tabs
