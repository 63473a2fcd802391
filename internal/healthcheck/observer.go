package healthcheck

import (
	"log/slog"
	"time"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// Report is what the monitor emits once per tick.
type Report struct {
	Timestamp time.Time
	Snapshot  endpoint.Snapshot
	Status    endpoint.Status
}

// Observer receives monitor reports. Logging, printing and aggregation
// live behind this interface, not in the monitor itself.
type Observer interface {
	Observe(report Report)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(report Report)

func (f ObserverFunc) Observe(report Report) {
	f(report)
}

// MultiObserver fans a report out to several observers in order.
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(report Report) {
		for _, o := range observers {
			o.Observe(report)
		}
	})
}

// LogObserver writes each report to a structured logger, warning on
// transitions away from all-healthy.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(report Report) {
	attrs := []any{
		slog.Time("timestamp", report.Timestamp),
		slog.String("status", report.Status.String()),
	}
	for name, verdict := range report.Snapshot {
		attrs = append(attrs, slog.String(name, verdict.String()))
	}

	if report.Status == endpoint.AllHealthy {
		o.logger.Info("health check", attrs...)
		return
	}
	o.logger.Warn("health check", attrs...)
}
