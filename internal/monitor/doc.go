// Package monitor turns tablet server metrics into rate-of-change tables.
//
// Each cycle fetches /metrics from every configured host, keeps only
// tablets whose peer is the raft leader, and offers the result to a
// two-slot History. When the content fingerprint differs from the last
// snapshot the pair is diffed and the delta rendered.
//
// # Key Components
//
//	Collector   - sequential fetch + normalization, tracks unreachable hosts
//	History     - current and previous snapshot, persisted in a store.KV
//	Diff        - per-metric deltas under counter semantics
//	RenderTall  - one row per (tablet, metric)
//	RenderWide  - one row per tablet, one column per metric, total row
//	Loop        - collect, diff, render, show, wait
//
// # Counter Semantics
//
// Metrics are treated as monotonic counters. A delta keeps a metric only if
// it grew; a metric seen for the first time passes through at its full
// value, and so does a tablet that just became leader. A tablet with no
// surviving metrics is left out of the delta entirely.
//
// # Rendering
//
// Metric names are simplified by stripping the rocksdb_number_ and rocksdb_
// prefixes before filtering. When the filter leaves a single metric the rows
// are ordered by value, highest first, and cut to RenderOptions.Top.
package monitor
