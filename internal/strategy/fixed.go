package strategy

import (
	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

type fixedPolicy struct {
	preferPrimary bool
}

func (p fixedPolicy) PreferenceOrder(_ int, pair endpoint.Pair) []endpoint.Endpoint {
	if p.preferPrimary {
		return []endpoint.Endpoint{pair.Primary, pair.Secondary}
	}
	return []endpoint.Endpoint{pair.Secondary, pair.Primary}
}

// NewFixedPolicy always prefers the same endpoint regardless of request
// index. Used by the serve entry point.
func NewFixedPolicy(preferPrimary bool) Policy {
	return fixedPolicy{preferPrimary: preferPrimary}
}
