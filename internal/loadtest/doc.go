// Package loadtest drives simulated requests through the balancer under
// the alternating preference policy and aggregates the outcomes into a
// per-endpoint tally with a success rate.
package loadtest
