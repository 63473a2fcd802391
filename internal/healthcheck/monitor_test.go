package healthcheck_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
	"github.com/anuragstark/multicloud-lb/internal/healthcheck"
)

type collectingObserver struct {
	mu      sync.Mutex
	reports []healthcheck.Report
}

func (c *collectingObserver) Observe(report healthcheck.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, report)
}

func (c *collectingObserver) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func (c *collectingObserver) first() healthcheck.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reports[0]
}

var _ = Describe("Monitor", func() {
	var (
		pair     endpoint.Pair
		observer *collectingObserver
		log      *slog.Logger
	)

	BeforeEach(func() {
		pair = testPair()
		observer = &collectingObserver{}
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	Describe("NewMonitor", func() {
		It("should reject a zero interval", func() {
			prober := &fakeProber{verdicts: map[string]endpoint.Verdict{}}
			_, err := healthcheck.NewMonitor(prober, pair.Endpoints(), 0, observer, log)
			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative interval", func() {
			prober := &fakeProber{verdicts: map[string]endpoint.Verdict{}}
			_, err := healthcheck.NewMonitor(prober, pair.Endpoints(), -time.Second, observer, log)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Run", func() {
		It("should emit a complete report on every tick", func() {
			prober := &fakeProber{verdicts: map[string]endpoint.Verdict{
				"aws": endpoint.Healthy,
				"gcp": endpoint.Unhealthy,
			}}

			monitor, err := healthcheck.NewMonitor(prober, pair.Endpoints(), 20*time.Millisecond, observer, log)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				defer close(done)
				monitor.Run(ctx)
			}()

			Eventually(observer.count).Should(BeNumerically(">=", 2))
			cancel()
			Eventually(done).Should(BeClosed())

			report := observer.first()
			Expect(report.Snapshot).To(HaveLen(2))
			Expect(report.Status).To(Equal(endpoint.Partial))
			Expect(report.Timestamp).NotTo(BeZero())
		})

		It("should stop at the next tick boundary when cancelled", func() {
			prober := &fakeProber{verdicts: map[string]endpoint.Verdict{}}

			monitor, err := healthcheck.NewMonitor(prober, pair.Endpoints(), 10*time.Millisecond, observer, log)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				defer close(done)
				monitor.Run(ctx)
			}()

			Eventually(observer.count).Should(BeNumerically(">=", 1))
			cancel()
			Eventually(done).Should(BeClosed())

			stopped := observer.count()
			Consistently(observer.count, 100*time.Millisecond).Should(Equal(stopped))
		})

		It("should return without probing when already cancelled", func() {
			prober := &fakeProber{verdicts: map[string]endpoint.Verdict{}}

			monitor, err := healthcheck.NewMonitor(prober, pair.Endpoints(), 10*time.Millisecond, observer, log)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(monitor.Run(ctx)).To(Succeed())
			Expect(observer.count()).To(BeZero())
		})
	})
})

var _ = Describe("Observers", func() {
	It("should fan reports out to every observer", func() {
		first := &collectingObserver{}
		second := &collectingObserver{}

		multi := healthcheck.MultiObserver(first, second)
		multi.Observe(healthcheck.Report{
			Timestamp: time.Now(),
			Snapshot:  endpoint.Snapshot{"aws": endpoint.Healthy},
			Status:    endpoint.AllHealthy,
		})

		Expect(first.count()).To(Equal(1))
		Expect(second.count()).To(Equal(1))
	})
})
