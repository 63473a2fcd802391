// Package balancer selects a serving endpoint for one logical request by
// walking a preference order and probing each candidate until one answers
// healthy. Exhausting the order is reported as a result, not a panic or
// an aborted run.
package balancer
