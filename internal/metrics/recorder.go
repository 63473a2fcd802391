package metrics

import (
	"sync"
	"time"

	"github.com/anuragstark/multicloud-lb/internal/endpoint"
	"github.com/anuragstark/multicloud-lb/internal/healthcheck"
)

// Recorder implements healthcheck.Observer and tallies what the monitor
// saw over its lifetime.
type Recorder struct {
	mutex       sync.Mutex
	ticks       int64
	healthy     map[string]int64
	statuses    map[endpoint.Status]int64
	transitions int64
	last        endpoint.Status
	hasLast     bool
	startTime   time.Time
}

// Summary is a point-in-time copy of everything the recorder tallied.
type Summary struct {
	Ticks       int64                     `json:"ticks"`
	Uptime      time.Duration             `json:"uptime"`
	Healthy     map[string]int64          `json:"healthy_ticks"`
	Statuses    map[endpoint.Status]int64 `json:"statuses"`
	Transitions int64                     `json:"transitions"`
}

func NewRecorder() *Recorder {
	return &Recorder{
		healthy:   make(map[string]int64),
		statuses:  make(map[endpoint.Status]int64),
		startTime: time.Now(),
	}
}

// Observe records one monitor report.
func (r *Recorder) Observe(report healthcheck.Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.ticks++
	r.statuses[report.Status]++

	for name, verdict := range report.Snapshot {
		if verdict == endpoint.Healthy {
			r.healthy[name]++
		} else if _, seen := r.healthy[name]; !seen {
			r.healthy[name] = 0
		}
	}

	if r.hasLast && r.last != report.Status {
		r.transitions++
	}
	r.last = report.Status
	r.hasLast = true
}

// Snapshot copies the current tallies.
func (r *Recorder) Snapshot() Summary {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	summary := Summary{
		Ticks:       r.ticks,
		Uptime:      time.Since(r.startTime),
		Healthy:     make(map[string]int64, len(r.healthy)),
		Statuses:    make(map[endpoint.Status]int64, len(r.statuses)),
		Transitions: r.transitions,
	}
	for name, count := range r.healthy {
		summary.Healthy[name] = count
	}
	for status, count := range r.statuses {
		summary.Statuses[status] = count
	}

	return summary
}
