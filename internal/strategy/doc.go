// Package strategy decides the order endpoints are tried in for a single
// request. Policies produce a preference order; failover across that
// order is the balancer's job, so new policies (weighted, least-latency)
// slot in without touching failover logic.
package strategy
