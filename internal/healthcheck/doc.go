// Package healthcheck classifies the health of the endpoint pair and
// implements the periodic monitor loop. Classification probes both
// endpoints with independent timeout budgets and assembles a complete
// snapshot before returning; the monitor emits one report per tick to an
// observer and stops at tick boundaries when its context is cancelled.
package healthcheck
