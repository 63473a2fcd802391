package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anuragstark/multicloud-lb/config"
	"github.com/anuragstark/multicloud-lb/internal/balancer"
	"github.com/anuragstark/multicloud-lb/internal/endpoint"
	"github.com/anuragstark/multicloud-lb/internal/healthcheck"
	"github.com/anuragstark/multicloud-lb/internal/prober"
	"github.com/anuragstark/multicloud-lb/pkg/logger"
)

const (
	exitOK                = 0
	exitFailure           = 1
	exitNoHealthyEndpoint = 2
	exitConfiguration     = 3
)

// errConfiguration wraps every configuration fault so the exit code stays
// distinct from runtime failures.
var errConfiguration = errors.New("configuration error")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return exitCode(err)
	}

	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errConfiguration), errors.Is(err, endpoint.ErrMissingAddress):
		return exitConfiguration
	case errors.Is(err, balancer.ErrAllEndpointsDown):
		return exitNoHealthyEndpoint
	default:
		return exitFailure
	}
}

// app bundles everything a subcommand needs: validated configuration, a
// logger, and the endpoint pair built once from the provisioning output.
type app struct {
	cfg  *config.Config
	log  *slog.Logger
	pair endpoint.Pair
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errConfiguration, err)
	}

	log := logger.New(os.Stderr, cfg.Logging.Level, cfg.Environment)

	primary, err := endpoint.New(cfg.Primary.Name, cfg.Primary.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errConfiguration, err)
	}

	secondary, err := endpoint.New(cfg.Secondary.Name, cfg.Secondary.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errConfiguration, err)
	}

	pair, err := endpoint.NewPair(primary, secondary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errConfiguration, err)
	}

	return &app{cfg: cfg, log: log, pair: pair}, nil
}

func (a *app) healthBudget() prober.Budget {
	return prober.Budget{
		Connect: config.Duration(a.cfg.HealthCheck.ConnectTimeout, prober.HealthBudget.Connect),
		Total:   config.Duration(a.cfg.HealthCheck.TotalTimeout, prober.HealthBudget.Total),
	}
}

func (a *app) loadTestBudget() prober.Budget {
	return prober.Budget{
		Connect: config.Duration(a.cfg.LoadTest.ConnectTimeout, prober.LoadTestBudget.Connect),
		Total:   config.Duration(a.cfg.LoadTest.TotalTimeout, prober.LoadTestBudget.Total),
	}
}

func (a *app) monitorInterval() time.Duration {
	return config.Duration(a.cfg.HealthCheck.Interval, healthcheck.DefaultInterval)
}
