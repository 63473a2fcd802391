package prober

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// Budget bounds one probe: Connect caps connection establishment,
// Total caps the whole request including the response.
type Budget struct {
	Connect time.Duration
	Total   time.Duration
}

// HealthBudget is the budget used by health checks and monitoring.
var HealthBudget = Budget{Connect: 5 * time.Second, Total: 10 * time.Second}

// LoadTestBudget is the tighter budget used during load simulation, so a
// dead endpoint cannot stretch the run's wall-clock time.
var LoadTestBudget = Budget{Connect: 3 * time.Second, Total: 5 * time.Second}

// Prober performs HTTP GET probes and content fetches against endpoints.
type Prober struct {
	client *resty.Client
	logger *slog.Logger
}

// New creates a Prober with the given budget. Keep-alives are disabled so
// every probe observes a fresh connection attempt.
func New(budget Budget, logger *slog.Logger) *Prober {
	client := resty.New()
	client.SetTimeout(budget.Total)
	client.SetHeader("User-Agent", "multicloud-lb/1.0")
	client.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{
			Timeout: budget.Connect,
		}).DialContext,
		DisableKeepAlives:     true,
		ResponseHeaderTimeout: budget.Total,
	})

	return &Prober{
		client: client,
		logger: logger,
	}
}

// Probe issues a GET against the endpoint's health path and classifies the
// result. Any transport error yields Unhealthy; the verdict only requires
// a 2xx response, not a specific body.
func (p *Prober) Probe(ctx context.Context, ep endpoint.Endpoint) endpoint.Verdict {
	if ep.Address == "" {
		return endpoint.Unhealthy
	}

	resp, err := p.client.R().SetContext(ctx).Get(ep.HealthURL())
	if err != nil {
		p.logger.Debug("probe failed",
			slog.String("endpoint", ep.Name),
			slog.String("url", ep.HealthURL()),
			slog.String("error", err.Error()))
		return endpoint.Unhealthy
	}

	if !resp.IsSuccess() {
		p.logger.Debug("probe returned non-success status",
			slog.String("endpoint", ep.Name),
			slog.Int("status", resp.StatusCode()))
		return endpoint.Unhealthy
	}

	return endpoint.Healthy
}

// Fetch retrieves the endpoint's root page. Unlike Probe, failures are
// returned to the caller, which decides how a degraded request is reported.
func (p *Prober) Fetch(ctx context.Context, ep endpoint.Endpoint) (string, error) {
	resp, err := p.client.R().SetContext(ctx).Get(ep.RootURL())
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", ep.RootURL(), err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("fetch %s: unexpected status %d", ep.RootURL(), resp.StatusCode())
	}

	return resp.String(), nil
}

// VerifyBody reports whether a health response body matches the wire
// contract: exactly "OK", with a trailing newline tolerated. Callers
// wanting content-level validation opt in with this on top of Probe.
func VerifyBody(body string) bool {
	return strings.TrimRight(body, "\n") == "OK"
}
