package strategy

import (
	"github.com/anuragstark/multicloud-lb/internal/endpoint"
)

// Policy produces the preference order for one request. The request index
// is 1-based, matching the load simulator's numbering.
type Policy interface {
	PreferenceOrder(request int, pair endpoint.Pair) []endpoint.Endpoint
}
