package strategy

import (
	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

type alternatingPolicy struct{}

// PreferenceOrder prefers the primary on odd request indices and the
// secondary on even ones, independent of health outcomes.
func (alternatingPolicy) PreferenceOrder(request int, pair endpoint.Pair) []endpoint.Endpoint {
	if request%2 == 1 {
		return []endpoint.Endpoint{pair.Primary, pair.Secondary}
	}
	return []endpoint.Endpoint{pair.Secondary, pair.Primary}
}

// NewAlternatingPolicy returns the round-robin stand-in used by the load
// simulator: odd requests prefer the primary, even requests the secondary.
func NewAlternatingPolicy() Policy {
	return alternatingPolicy{}
}
