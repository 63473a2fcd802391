// Package prober issues bounded-timeout HTTP checks against endpoints.
// Transport failures, refusals and timeouts are absorbed into an
// Unhealthy verdict rather than surfaced as errors.
package prober
