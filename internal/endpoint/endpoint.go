package endpoint

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultRootPath   = "/"
	DefaultHealthPath = "/health"
)

// ErrMissingAddress is returned when an endpoint is constructed without a
// usable address. It is a configuration fault, not a probe failure.
var ErrMissingAddress = errors.New("endpoint address missing")

// Endpoint identifies one deployed web server: a symbolic name, a host
// address (IP or resolvable hostname), and the paths its root page and
// health check are served on. Endpoints are immutable once constructed.
type Endpoint struct {
	Name       string
	Address    string
	RootPath   string
	HealthPath string
}

// New builds an Endpoint from a name and an address, applying the default
// root and health paths. The address may be a bare IP, a hostname, or a
// full http URL; the scheme is added when missing.
func New(name, address string) (Endpoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Endpoint{}, fmt.Errorf("%w: endpoint %q", ErrMissingAddress, name)
	}
	if name == "" {
		name = address
	}

	return Endpoint{
		Name:       name,
		Address:    address,
		RootPath:   DefaultRootPath,
		HealthPath: DefaultHealthPath,
	}, nil
}

func (e Endpoint) baseURL() string {
	if strings.Contains(e.Address, "://") {
		return strings.TrimRight(e.Address, "/")
	}
	return "http://" + strings.TrimRight(e.Address, "/")
}

// HealthURL returns the absolute URL of the endpoint's health check.
func (e Endpoint) HealthURL() string {
	return e.baseURL() + e.HealthPath
}

// RootURL returns the absolute URL of the endpoint's root page.
func (e Endpoint) RootURL() string {
	return e.baseURL() + e.RootPath
}

// Pair holds the two endpoints the system balances between, in preference
// order: Primary is tried first by default, Secondary is the failover
// target.
type Pair struct {
	Primary   Endpoint
	Secondary Endpoint
}

// NewPair validates that both endpoints are usable and that their names
// are distinct, so snapshot entries and load-test counters stay unambiguous.
func NewPair(primary, secondary Endpoint) (Pair, error) {
	if primary.Address == "" {
		return Pair{}, fmt.Errorf("%w: primary", ErrMissingAddress)
	}
	if secondary.Address == "" {
		return Pair{}, fmt.Errorf("%w: secondary", ErrMissingAddress)
	}
	if primary.Name == secondary.Name {
		return Pair{}, fmt.Errorf("endpoint names must differ, both are %q", primary.Name)
	}

	return Pair{Primary: primary, Secondary: secondary}, nil
}

// Endpoints returns both endpoints in declaration order.
func (p Pair) Endpoints() []Endpoint {
	return []Endpoint{p.Primary, p.Secondary}
}
