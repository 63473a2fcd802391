// Package metrics aggregates monitor reports in memory: tick counts,
// per-endpoint healthy tallies, aggregate status distribution and status
// transitions. Nothing is persisted across runs.
package metrics
