package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/anuragstark/multicloud-lb/config"
	"github.com/anuragstark/multicloud-lb/internal/balancer"
	"github.com/anuragstark/multicloud-lb/internal/endpoint"
	"github.com/anuragstark/multicloud-lb/internal/healthcheck"
	"github.com/anuragstark/multicloud-lb/internal/httpserver"
	"github.com/anuragstark/multicloud-lb/internal/loadtest"
	"github.com/anuragstark/multicloud-lb/internal/metrics"
	"github.com/anuragstark/multicloud-lb/internal/prober"
	"github.com/anuragstark/multicloud-lb/internal/strategy"
	"github.com/anuragstark/multicloud-lb/internal/stub"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "multicloud-lb",
		Short: "Client-side health monitoring and load distribution across two cloud endpoints",
		Long: `multicloud-lb probes two independently hosted web endpoints, classifies
their health, and distributes simulated requests across them with
failover when the preferred endpoint is down.

  multicloud-lb check          probe both endpoints once
  multicloud-lb monitor        probe on an interval until interrupted
  multicloud-lb loadtest       drive simulated requests through the balancer
  multicloud-lb serve          fetch content from the healthiest endpoint
  multicloud-lb stub           run a local endpoint stub for testing`,
		SilenceUsage: true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newMonitorCmd())
	root.AddCommand(newLoadTestCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newStubCmd())

	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe both endpoints once and report the health snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}

			p := prober.New(app.healthBudget(), app.log)
			snapshot := healthcheck.Classify(cmd.Context(), p, app.pair.Endpoints())
			status := snapshot.Aggregate()

			for _, ep := range app.pair.Endpoints() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", ep.Name, ep.Address, snapshot[ep.Name])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", status)

			if status == endpoint.AllDown {
				return balancer.ErrAllEndpointsDown
			}
			return nil
		},
	}
}

func newMonitorCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Probe both endpoints on an interval until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("interval") {
				interval = app.monitorInterval()
			}

			p := prober.New(app.healthBudget(), app.log)
			recorder := metrics.NewRecorder()
			observer := healthcheck.MultiObserver(
				healthcheck.NewLogObserver(app.log),
				recorder,
			)

			monitor, err := healthcheck.NewMonitor(p, app.pair.Endpoints(), interval, observer, app.log)
			if err != nil {
				return fmt.Errorf("%w: %v", errConfiguration, err)
			}

			app.log.Info("monitoring", slog.Duration("interval", interval))
			if err := monitor.Run(cmd.Context()); err != nil {
				return err
			}

			summary := recorder.Snapshot()
			app.log.Info("monitor summary",
				slog.Int64("ticks", summary.Ticks),
				slog.Duration("uptime", summary.Uptime),
				slog.Int64("transitions", summary.Transitions),
				slog.Any("healthy_ticks", summary.Healthy))
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "probe interval (overrides config)")

	return cmd
}

func newLoadTestCmd() *cobra.Command {
	var (
		requests int
		delay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive simulated requests through the balancer and report the outcome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("requests") {
				requests = app.cfg.LoadTest.Requests
			}
			if !cmd.Flags().Changed("delay") {
				delay = config.Duration(app.cfg.LoadTest.Delay, loadtest.DefaultDelay)
			}

			p := prober.New(app.loadTestBudget(), app.log)
			b := balancer.New(p, app.log)
			sim := loadtest.NewSimulator(b, strategy.NewAlternatingPolicy(), delay, app.log)

			result, err := sim.Run(cmd.Context(), app.pair, requests)
			if err != nil {
				if result.Requests == 0 {
					return fmt.Errorf("%w: %v", errConfiguration, err)
				}
				app.log.Warn("load test interrupted", slog.String("error", err.Error()))
			}

			for _, ep := range app.pair.Endpoints() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", ep.Name, result.Served[ep.Name])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "failed: %d\n", result.Failed)
			fmt.Fprintf(cmd.OutOrStdout(), "success rate: %d%%\n", result.SuccessRate())

			if result.Requests > 0 && result.Failed == result.Requests {
				return balancer.ErrAllEndpointsDown
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&requests, "requests", 0, "number of simulated requests (overrides config)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause between requests (overrides config)")

	return cmd
}

func newServeCmd() *cobra.Command {
	var prefer string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Select a healthy endpoint and fetch its root page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prefer != "primary" && prefer != "secondary" {
				return fmt.Errorf("%w: --prefer must be primary or secondary, got %q", errConfiguration, prefer)
			}

			app, err := loadApp()
			if err != nil {
				return err
			}

			p := prober.New(app.loadTestBudget(), app.log)
			b := balancer.New(p, app.log)

			policy := strategy.NewFixedPolicy(prefer == "primary")
			order := policy.PreferenceOrder(1, app.pair)

			served, err := b.Serve(cmd.Context(), order)
			if err != nil {
				return err
			}

			app.log.Info("served", slog.String("endpoint", served.Endpoint.Name))
			fmt.Fprint(cmd.OutOrStdout(), served.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefer, "prefer", "primary", "endpoint to try first (primary or secondary)")

	return cmd
}

func newStubCmd() *cobra.Command {
	var (
		addr string
		name string
	)

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local endpoint stub speaking the health wire contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("addr") {
				addr = app.cfg.Stub.Address
			}

			srv, err := httpserver.New(addr, stub.NewHandler(name, app.log))
			if err != nil {
				return fmt.Errorf("%w: %v", errConfiguration, err)
			}

			srvErrCh := make(chan error, 1)
			go func() {
				srvErrCh <- srv.Start()
			}()

			app.log.Info("stub endpoint listening",
				slog.String("addr", addr),
				slog.String("name", name))

			select {
			case <-cmd.Context().Done():
				app.log.Info("shutting down stub endpoint")
				return srv.Shutdown(context.Background())
			case err := <-srvErrCh:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&name, "name", "stub", "endpoint name shown on the root page")

	return cmd
}
