package loadtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
	"github.com/anuragstark/multicloud-lb/internal/strategy"
)

// DefaultDelay paces consecutive simulated requests. It keeps the remote
// endpoints unbothered and the live output legible; it is not a
// correctness requirement.
const DefaultDelay = 500 * time.Millisecond

// Result accumulates the outcomes of one simulation run.
type Result struct {
	Requests int
	Served   map[string]int
	Failed   int
}

// SuccessRate returns the integer-truncated percentage of requests that
// were served: (total - failed) * 100 / total.
func (r Result) SuccessRate() int {
	if r.Requests == 0 {
		return 0
	}
	return (r.Requests - r.Failed) * 100 / r.Requests
}

// Balancer is the selection surface the simulator drives.
type Balancer interface {
	Select(ctx context.Context, order []endpoint.Endpoint) (endpoint.Endpoint, error)
}

// Simulator runs sequential simulated requests through a balancer.
type Simulator struct {
	balancer Balancer
	policy   strategy.Policy
	delay    time.Duration
	logger   *slog.Logger
}

func NewSimulator(balancer Balancer, policy strategy.Policy, delay time.Duration, logger *slog.Logger) *Simulator {
	if delay < 0 {
		delay = DefaultDelay
	}

	return &Simulator{
		balancer: balancer,
		policy:   policy,
		delay:    delay,
		logger:   logger,
	}
}

// Run drives requests 1..count through the balancer, one at a time. A
// failed selection is counted, logged and moved past; it never aborts the
// run. Cancelling ctx stops the run between requests and returns the
// partial result alongside the context error.
func (s *Simulator) Run(ctx context.Context, pair endpoint.Pair, count int) (Result, error) {
	if count < 1 {
		return Result{}, fmt.Errorf("request count must be at least 1, got %d", count)
	}

	result := Result{
		Requests: count,
		Served:   make(map[string]int, 2),
	}

	for i := 1; i <= count; i++ {
		order := s.policy.PreferenceOrder(i, pair)

		selected, err := s.balancer.Select(ctx, order)
		if err != nil {
			result.Failed++
			s.logger.Warn("request failed",
				slog.Int("request", i),
				slog.String("error", err.Error()))
		} else {
			result.Served[selected.Name]++
			s.logger.Info("request served",
				slog.Int("request", i),
				slog.String("endpoint", selected.Name))
		}

		if i == count {
			break
		}

		select {
		case <-ctx.Done():
			result.Requests = i
			return result, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	return result, nil
}
