// Package dnsx implements the DNS query executor: a single query
// against a single resolver with timeout and bounded retries.
package dnsx

import (
	"context"
	"errors"
	"time"

	"github.com/miekg/dns"
)

// Querier issues one DNS query for a domain against a resolver and
// returns the observed round trip time. This is the raw primitive on
// top of which Executor builds the retry policy. Implementations MUST
// be safe for concurrent use by independent (resolver, domain) pairs.
type Querier interface {
	Query(ctx context.Context, address, domain string, timeout time.Duration) (time.Duration, error)
}

// Errors returned when the server replies but resolution fails. The
// classifier maps all of them to a resolution error, which we never
// retry because retrying would not change the answer.
var (
	// ErrNoSuchHost indicates an NXDOMAIN reply.
	ErrNoSuchHost = errors.New("dnsx: no such host")

	// ErrRefused indicates the server refused to serve the query.
	ErrRefused = errors.New("dnsx: query refused")

	// ErrServfail indicates a server failure reply.
	ErrServfail = errors.New("dnsx: server failure")

	// ErrMisbehaving indicates any other unexpected reply code.
	ErrMisbehaving = errors.New("dnsx: server is misbehaving")
)

// MiekgQuerier implements Querier doing DNS over UDP queries
// using github.com/miekg/dns.
type MiekgQuerier struct{}

var _ Querier = &MiekgQuerier{}

// Query implements Querier.
func (mq *MiekgQuerier) Query(
	ctx context.Context, address, domain string, timeout time.Duration) (time.Duration, error) {
	client := &dns.Client{Net: "udp", Timeout: timeout}
	query := new(dns.Msg)
	query.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	reply, rtt, err := client.ExchangeContext(ctx, query, address)
	if err != nil {
		return 0, err
	}
	switch reply.Rcode {
	case dns.RcodeSuccess:
		return rtt, nil
	case dns.RcodeNameError:
		return 0, ErrNoSuchHost
	case dns.RcodeRefused:
		return 0, ErrRefused
	case dns.RcodeServerFailure:
		return 0, ErrServfail
	default:
		return 0, ErrMisbehaving
	}
}
