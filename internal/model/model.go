// Package model contains the data model shared across packages.
package model

//
// Resolvers, query tasks, and query results
//

import "fmt"

// Resolver is a DNS server under test. The zero value is invalid. A
// Resolver is immutable once configured for a run.
type Resolver struct {
	// Address is the resolver's network address (e.g., "8.8.8.8:53").
	Address string

	// Label is the human readable description (e.g., "Google Public DNS").
	Label string
}

// Key returns the key identifying this resolver inside the persisted
// health store. Two resolvers with the same address but different
// labels have distinct histories.
func (r Resolver) Key() string {
	return fmt.Sprintf("%s %s", r.Address, r.Label)
}

// String implements fmt.Stringer.
func (r Resolver) String() string {
	return fmt.Sprintf("%s (%s)", r.Address, r.Label)
}

// HealthRecord is the persisted reliability state of a resolver.
type HealthRecord struct {
	// ConsecutiveFailures counts failed queries since the last success.
	ConsecutiveFailures int64

	// Dropped indicates the resolver is excluded from future runs
	// until an operator resets its record.
	Dropped bool

	// TotalQueries counts every query ever dispatched to the resolver.
	TotalQueries int64

	// TotalSuccesses counts every query ever answered successfully.
	TotalSuccesses int64
}

// SuccessRate returns the historical success rate in [0, 1]. A resolver
// that has never been queried has a success rate of zero.
func (hr HealthRecord) SuccessRate() float64 {
	if hr.TotalQueries <= 0 {
		return 0
	}
	return float64(hr.TotalSuccesses) / float64(hr.TotalQueries)
}

// QueryTask is a single (resolver, domain) query to perform. Tasks are
// read-only once created.
type QueryTask struct {
	// Resolver is the resolver to query.
	Resolver Resolver

	// Domain is the domain to resolve.
	Domain string

	// Ordinal is the task's position within the run for its resolver.
	Ordinal int
}

// ErrorKind classifies a failed query.
type ErrorKind string

const (
	// KindTimeout indicates the query timed out.
	KindTimeout = ErrorKind("timeout")

	// KindResolutionError indicates the server answered but resolution
	// failed (e.g., NXDOMAIN or a misbehaving reply).
	KindResolutionError = ErrorKind("resolution_error")

	// KindNetworkUnreachable indicates we could not reach the server.
	KindNetworkUnreachable = ErrorKind("network_unreachable")

	// KindMalformedConfiguration indicates the resolver address is invalid.
	KindMalformedConfiguration = ErrorKind("malformed_configuration")

	// KindCancelled indicates the task was skipped by quick-fail
	// before being dispatched.
	KindCancelled = ErrorKind("cancelled")
)

// QueryResult is the outcome of executing a QueryTask.
type QueryResult struct {
	// Task is the task that produced this result.
	Task QueryTask

	// LatencyMs is the query latency in milliseconds. It is only
	// meaningful when Failure is empty.
	LatencyMs float64

	// Failure is empty on success, otherwise the error kind.
	Failure ErrorKind

	// Attempts is the number of attempts performed, including the
	// first one. It is always positive for a dispatched task.
	Attempts int
}

// Succeeded returns whether the query succeeded.
func (qr QueryResult) Succeeded() bool {
	return qr.Failure == ""
}

// ResolverRunStats contains a resolver's statistics for one run. The
// latency fields are only meaningful when Defined is true, i.e., when
// at least one query succeeded.
type ResolverRunStats struct {
	// Min is the minimum latency in milliseconds.
	Min float64

	// Max is the maximum latency in milliseconds.
	Max float64

	// Mean is the arithmetic mean latency in milliseconds.
	Mean float64

	// Median is the median latency in milliseconds.
	Median float64

	// StdDev is the population standard deviation in milliseconds.
	StdDev float64

	// Defined indicates whether the latency fields above are defined.
	Defined bool

	// SuccessRate is successes over dispatched attempts, in [0, 1].
	SuccessRate float64

	// TotalAttempts counts dispatched (non-skipped) tasks.
	TotalAttempts int
}

// ResolverReport is the per-resolver unit we exchange with the
// persistence layer and with the presentation layer.
type ResolverReport struct {
	// Resolver identifies the resolver.
	Resolver Resolver

	// Stats contains this run's statistics.
	Stats ResolverRunStats

	// Health is the resolver's health record updated with this
	// run's outcomes.
	Health HealthRecord

	// QuickFailed indicates the scheduler stopped issuing tasks for
	// this resolver during the run.
	QuickFailed bool

	// Unhealthy indicates the historical success rate fell below the
	// configured minimum. This flag is informative only and does not
	// cause the resolver to be dropped.
	Unhealthy bool
}
