package healthcheck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// DefaultInterval is the monitor's tick interval when none is configured.
const DefaultInterval = 30 * time.Second

// Monitor repeatedly classifies the endpoint pair on a fixed interval and
// emits one report per tick to its observer.
type Monitor struct {
	prober    Prober
	endpoints []endpoint.Endpoint
	interval  time.Duration
	observer  Observer
	logger    *slog.Logger
}

// NewMonitor validates the interval and builds a monitor. A non-positive
// interval is a configuration fault.
func NewMonitor(
	prober Prober,
	endpoints []endpoint.Endpoint,
	interval time.Duration,
	observer Observer,
	logger *slog.Logger,
) (*Monitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("monitor interval must be positive, got %s", interval)
	}

	return &Monitor{
		prober:    prober,
		endpoints: endpoints,
		interval:  interval,
		observer:  observer,
		logger:    logger,
	}, nil
}

// Run loops until ctx is cancelled: classify, emit, sleep. Cancellation is
// checked at tick boundaries only; probes already in flight run to
// completion on their own timeout budget, so that bound is the worst-case
// stop latency.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			m.logger.Info("monitor stopped")
			return nil
		}

		m.tick(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (m *Monitor) tick(ctx context.Context) {
	// Detach from the parent's cancellation so an in-flight probe is
	// bounded by its own timeout, not cut off mid-request.
	probeCtx := context.WithoutCancel(ctx)

	snapshot := Classify(probeCtx, m.prober, m.endpoints)
	m.observer.Observe(Report{
		Timestamp: time.Now(),
		Snapshot:  snapshot,
		Status:    snapshot.Aggregate(),
	})
}
