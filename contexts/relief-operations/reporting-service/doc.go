// Package reportingservice serves the read-only operational reports:
// dashboard counters, per-pair distribution statistics, pending households,
// monthly summaries and inventory stock status. It owns no tables and never
// writes; the aggregates query the registry and distribution engine tables
// directly.
package reportingservice
