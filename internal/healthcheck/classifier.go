package healthcheck

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// Prober produces a verdict for a single endpoint within its own timeout
// budget.
type Prober interface {
	Probe(ctx context.Context, ep endpoint.Endpoint) endpoint.Verdict
}

// Classify probes every endpoint and returns a snapshot with exactly one
// verdict per endpoint. Probes run concurrently, each on its own timeout,
// and the snapshot is only returned once all of them have finished.
func Classify(ctx context.Context, prober Prober, endpoints []endpoint.Endpoint) endpoint.Snapshot {
	snapshot := make(endpoint.Snapshot, len(endpoints))

	var mu sync.Mutex
	g := new(errgroup.Group)

	for _, ep := range endpoints {
		ep := ep
		g.Go(func() error {
			verdict := prober.Probe(ctx, ep)

			mu.Lock()
			snapshot[ep.Name] = verdict
			mu.Unlock()

			return nil
		})
	}

	// Probes never return errors; failures are already verdicts.
	_ = g.Wait()

	return snapshot
}
