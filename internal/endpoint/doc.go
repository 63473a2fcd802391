// Package endpoint defines the immutable endpoint pair the balancer
// operates on, together with the health verdict, snapshot and aggregate
// status types derived from probing them.
package endpoint
