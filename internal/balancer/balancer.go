package balancer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// ErrAllEndpointsDown is returned when every candidate in the preference
// order answered unhealthy.
var ErrAllEndpointsDown = errors.New("no healthy endpoint")

// ErrContentFetch marks a request whose health probe succeeded but whose
// content fetch then failed. The probe and the fetch are two independent
// network operations; the window between them is a documented race that
// degrades that single request, nothing more.
var ErrContentFetch = errors.New("content fetch failed")

// Prober is the probing surface the balancer needs: a health verdict per
// candidate, plus the root-page fetch for serve mode.
type Prober interface {
	Probe(ctx context.Context, ep endpoint.Endpoint) endpoint.Verdict
	Fetch(ctx context.Context, ep endpoint.Endpoint) (string, error)
}

// Balancer picks a serving endpoint by probing candidates in preference
// order. There is deliberately no cached health state: every selection
// re-probes.
type Balancer struct {
	prober Prober
	logger *slog.Logger
}

func New(prober Prober, logger *slog.Logger) *Balancer {
	return &Balancer{
		prober: prober,
		logger: logger,
	}
}

// Select walks the preference order and returns the first endpoint whose
// probe answers healthy. Each candidate is probed at most once, so an
// exhausted order costs exactly len(order) probes before
// ErrAllEndpointsDown.
func (b *Balancer) Select(ctx context.Context, order []endpoint.Endpoint) (endpoint.Endpoint, error) {
	for i, candidate := range order {
		if b.prober.Probe(ctx, candidate) == endpoint.Healthy {
			if i > 0 {
				b.logger.Info("failed over",
					slog.String("preferred", order[0].Name),
					slog.String("selected", candidate.Name))
			}
			return candidate, nil
		}

		b.logger.Debug("candidate unhealthy",
			slog.String("endpoint", candidate.Name))
	}

	return endpoint.Endpoint{}, ErrAllEndpointsDown
}

// Served is the outcome of one request in serve mode.
type Served struct {
	Endpoint endpoint.Endpoint
	Content  string
}

// Serve selects an endpoint and fetches its root page. A fetch failure
// after a successful probe degrades the request to ErrContentFetch rather
// than retrying or falling through to the next candidate.
func (b *Balancer) Serve(ctx context.Context, order []endpoint.Endpoint) (Served, error) {
	selected, err := b.Select(ctx, order)
	if err != nil {
		return Served{}, err
	}

	content, err := b.prober.Fetch(ctx, selected)
	if err != nil {
		b.logger.Warn("content fetch failed after healthy probe",
			slog.String("endpoint", selected.Name),
			slog.String("error", err.Error()))
		return Served{}, fmt.Errorf("%w: %s: %v", ErrContentFetch, selected.Name, err)
	}

	return Served{Endpoint: selected, Content: content}, nil
}
