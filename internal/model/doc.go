// Package model defines the data structures shared by the NEOCC parsers,
// the transport, the report writers and the CLI.
//
// This package contains the following main types:
//   - Document: one fetched resource, decoded to UTF-8 text
//   - ListResult: the parsed content of a NEOCC list file
//   - TabResult: a sealed sum type with one variant per object tab
//     (Impacts, CloseApproaches, PhysicalProperties, Observations,
//     KeplerianOrbit, EquinoctialOrbit, Ephemerides, Summary)
//
// Blocks that may legitimately be absent (roving observations, radar
// observations, non-gravitational parameters, matrices, ...) are nil
// tables or unset fields. The human-readable explanation for each absence
// is an exported constant such as NoRadarObservations.
//
// All error kinds a caller may need to tell apart are declared in
// errors.go and are matched with errors.Is.
package model
