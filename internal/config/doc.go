// Package config provides the runtime settings of neocc: portal
// endpoints, transport limits, retry and batch behavior, and the
// document cache. Settings come from defaults, a YAML file, NEOCC_*
// environment variables and CLI flags.
package config
