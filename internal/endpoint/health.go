package endpoint

// Verdict is the boolean health classification of a single probe.
type Verdict int

const (
	Unhealthy Verdict = iota
	Healthy
)

func (v Verdict) String() string {
	if v == Healthy {
		return "healthy"
	}
	return "unhealthy"
}

// Snapshot maps each known endpoint name to the verdict observed for it
// in one check cycle. A snapshot is assembled completely before it is
// handed to any consumer and is never mutated afterwards.
type Snapshot map[string]Verdict

// Status is the system-wide health summary derived from a snapshot.
type Status int

const (
	AllDown Status = iota
	Partial
	AllHealthy
)

func (s Status) String() string {
	switch s {
	case AllHealthy:
		return "all-healthy"
	case Partial:
		return "partial"
	default:
		return "all-down"
	}
}

// Aggregate derives the overall status: AllHealthy when every verdict is
// Healthy, AllDown when every verdict is Unhealthy, Partial otherwise.
// An empty snapshot aggregates to AllDown.
func (s Snapshot) Aggregate() Status {
	healthy := 0
	for _, v := range s {
		if v == Healthy {
			healthy++
		}
	}

	switch {
	case len(s) == 0 || healthy == 0:
		return AllDown
	case healthy == len(s):
		return AllHealthy
	default:
		return Partial
	}
}
