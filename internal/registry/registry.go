// Package registry implements the resolver registry: the configured
// resolver list merged with the persisted health history.
package registry

import (
	"fmt"
	"net"
	"strconv"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// Registry holds the resolvers configured for a run along with their
// persisted health records. Construct with New. The persisted store
// is read once at construction and written once by ApplyReports; the
// registry is not meant for concurrent use during a run.
type Registry struct {
	// health maps a resolver key to its record.
	health map[string]model.HealthRecord

	// kvs is the persistence gateway.
	kvs model.KeyValueStore

	// logger is the logger to use.
	logger model.Logger

	// resolvers is the validated resolver list in configuration order.
	resolvers []model.Resolver
}

// New creates a Registry from the configured resolvers and the health
// history inside kvs. Resolvers with a malformed address are excluded
// from the run with a warning. A corrupted or missing history is not
// fatal: we start from an empty one.
func New(kvs model.KeyValueStore, logger model.Logger, configured []model.Resolver) *Registry {
	reg := &Registry{
		kvs:    kvs,
		logger: model.ValidLoggerOrDefault(logger),
	}
	for _, resolver := range configured {
		addr, err := canonicalAddress(resolver.Address)
		if err != nil {
			reg.logger.Warnf("registry: excluding %s: %s", resolver, err.Error())
			continue
		}
		resolver.Address = addr
		reg.resolvers = append(reg.resolvers, resolver)
	}
	reg.health = reg.loadHistory()
	return reg
}

// canonicalAddress validates a resolver address and returns it in
// host:port form. A bare IP address gets the default DNS port.
func canonicalAddress(address string) (string, error) {
	if ip := net.ParseIP(address); ip != nil {
		return net.JoinHostPort(address, "53"), nil
	}
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", fmt.Errorf("%s: not an IP address or host:port endpoint", address)
	}
	if net.ParseIP(host) == nil {
		return "", fmt.Errorf("%s: host is not an IP address", address)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("%s: invalid port", address)
	}
	return net.JoinHostPort(host, port), nil
}

// ActiveResolvers returns the resolvers to use for the next run, in
// configuration order, excluding the dropped ones.
func (reg *Registry) ActiveResolvers() []model.Resolver {
	var out []model.Resolver
	for _, resolver := range reg.resolvers {
		if reg.health[resolver.Key()].Dropped {
			continue
		}
		out = append(out, resolver)
	}
	return out
}

// DroppedResolvers returns reports for resolvers that were dropped
// before the run began, so the presentation layer can mention them
// along with their consecutive-failure counts.
func (reg *Registry) DroppedResolvers() []model.ResolverReport {
	var out []model.ResolverReport
	for _, resolver := range reg.resolvers {
		record := reg.health[resolver.Key()]
		if !record.Dropped {
			continue
		}
		out = append(out, model.ResolverReport{Resolver: resolver, Health: record})
	}
	return out
}

// HealthRecord returns the persisted record for the given resolver, or
// a fresh record when the resolver has no history yet.
func (reg *Registry) HealthRecord(resolver model.Resolver) model.HealthRecord {
	return reg.health[resolver.Key()]
}

// ApplyReports merges each report's health record into the store and
// persists both the updated history and this run's statistics.
func (reg *Registry) ApplyReports(reports []model.ResolverReport) error {
	for _, report := range reports {
		reg.health[report.Resolver.Key()] = report.Health
	}
	if err := reg.saveHistory(); err != nil {
		return err
	}
	return reg.saveStats(reports)
}

// Reset clears the persisted record of the given resolver, making it
// eligible for the next run even if it was dropped.
func (reg *Registry) Reset(resolver model.Resolver) error {
	delete(reg.health, resolver.Key())
	return reg.saveHistory()
}

// ResetAll clears the whole persisted history.
func (reg *Registry) ResetAll() error {
	reg.health = make(map[string]model.HealthRecord)
	return reg.saveHistory()
}
