package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
	"github.com/anuragstark/multicloud-lb/internal/healthcheck"
	"github.com/anuragstark/multicloud-lb/internal/metrics"
)

func report(status endpoint.Status, snapshot endpoint.Snapshot) healthcheck.Report {
	return healthcheck.Report{
		Timestamp: time.Now(),
		Snapshot:  snapshot,
		Status:    status,
	}
}

var _ = Describe("Recorder", func() {
	var recorder *metrics.Recorder

	BeforeEach(func() {
		recorder = metrics.NewRecorder()
	})

	It("should start empty", func() {
		summary := recorder.Snapshot()
		Expect(summary.Ticks).To(BeZero())
		Expect(summary.Transitions).To(BeZero())
		Expect(summary.Healthy).To(BeEmpty())
	})

	It("should tally ticks and healthy observations", func() {
		recorder.Observe(report(endpoint.AllHealthy, endpoint.Snapshot{
			"aws": endpoint.Healthy,
			"gcp": endpoint.Healthy,
		}))
		recorder.Observe(report(endpoint.Partial, endpoint.Snapshot{
			"aws": endpoint.Healthy,
			"gcp": endpoint.Unhealthy,
		}))

		summary := recorder.Snapshot()
		Expect(summary.Ticks).To(Equal(int64(2)))
		Expect(summary.Healthy["aws"]).To(Equal(int64(2)))
		Expect(summary.Healthy["gcp"]).To(Equal(int64(1)))
		Expect(summary.Statuses[endpoint.AllHealthy]).To(Equal(int64(1)))
		Expect(summary.Statuses[endpoint.Partial]).To(Equal(int64(1)))
	})

	It("should count status transitions, not repeats", func() {
		snapshot := endpoint.Snapshot{"aws": endpoint.Healthy, "gcp": endpoint.Healthy}

		recorder.Observe(report(endpoint.AllHealthy, snapshot))
		recorder.Observe(report(endpoint.AllHealthy, snapshot))
		recorder.Observe(report(endpoint.AllDown, endpoint.Snapshot{
			"aws": endpoint.Unhealthy,
			"gcp": endpoint.Unhealthy,
		}))
		recorder.Observe(report(endpoint.AllHealthy, snapshot))

		Expect(recorder.Snapshot().Transitions).To(Equal(int64(2)))
	})

	It("should record an unhealthy endpoint with a zero tally", func() {
		recorder.Observe(report(endpoint.AllDown, endpoint.Snapshot{
			"aws": endpoint.Unhealthy,
		}))

		summary := recorder.Snapshot()
		Expect(summary.Healthy).To(HaveKey("aws"))
		Expect(summary.Healthy["aws"]).To(BeZero())
	})

	It("should return independent copies", func() {
		recorder.Observe(report(endpoint.AllHealthy, endpoint.Snapshot{"aws": endpoint.Healthy}))

		first := recorder.Snapshot()
		first.Healthy["aws"] = 99

		Expect(recorder.Snapshot().Healthy["aws"]).To(Equal(int64(1)))
	})
})
