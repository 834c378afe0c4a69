// Package cli implements the ybmetrics command-line interface.
//
// Commands are thin: each loads config, applies flags, and hands off to a
// run function that takes plain values so it can be tested without Cobra.
//
// # Command Structure
//
//	ybmetrics [monitor]   - Print per-tablet metric deltas every interval
//	ybmetrics tablets     - List leader tablets (table, json or yaml)
//	ybmetrics clean       - Clear retained snapshots
//	ybmetrics doctor      - Check config, store, lock and host reachability
//	ybmetrics version     - Print version information
//	ybmetrics completion  - Generate shell completion
//
// The root command also accepts -m/--mode monitor|tablets|clean, matching
// the flag-only interface older scripts use.
//
// # Configuration Precedence
//
// Defaults, then the config file (--config, ./.ybmetrics.yaml, or
// ~/.config/ybmetrics/config.yaml), then YBMETRICS_* environment variables,
// then flags. Only flags that were explicitly set override config.
//
// # Sessions
//
// monitor and clean own the snapshot store. OpenSession takes an instance
// lock next to the store file before opening it, so a second process fails
// fast and names the holder instead of waiting on the store's file lock.
// tablets never opens the store.
//
// # Exit Codes
//
// 0 on success or interrupt, 1 on any error or failed doctor check. Structured errors are printed
// with their suggestion; `tablets --format json` reports errors in the JSON
// envelope instead.
package cli
