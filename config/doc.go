// Package config loads the endpoint pair and the probe, monitor and
// load-test settings from a YAML file and environment variables. Missing
// or malformed endpoint addresses are configuration faults and are
// rejected here, before any network call is attempted.
package config
