// Package main provides the entry point for the neocc CLI.
//
// neocc queries the ESA NEO Coordination Centre portal: its published
// lists (risk list, close approaches, priority lists, ...) and the
// per-object tabs (impacts, observations, orbit properties, ...).
//
// Usage:
//
//	neocc list risk_list
//	neocc object "99942 Apophis" --tab impacts
//
// See --help for all available options.
package main

func main() {
	Execute()
}
