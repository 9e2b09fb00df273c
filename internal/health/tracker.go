// Package health implements the per-resolver health state machine.
//
// Each resolver is either healthy or dropped. A resolver becomes
// dropped once its consecutive-failure count reaches the configured
// maximum, and stays dropped until an operator resets its record; we
// never reinstate a dropped resolver on our own.
//
// Separately from the persisted state, the tracker keeps a run-scoped
// consecutive-failure counter per resolver. Once that counter reaches
// the quick-fail threshold, the scheduler stops issuing tasks for the
// resolver for the remainder of the run.
package health

import (
	"sync"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// Tracker tracks the health of a set of resolvers during a run. Use
// NewTracker to construct. Safe for concurrent use.
type Tracker struct {
	// logger is the logger to use.
	logger model.Logger

	// maxConsecutiveFailures is the drop threshold.
	maxConsecutiveFailures int64

	// minSuccessRate is the unhealthy-flag threshold.
	minSuccessRate float64

	// mu protects states.
	mu sync.Mutex

	// quickFailThreshold is the quick-fail threshold.
	quickFailThreshold int64

	// states maps a resolver key to its state.
	states map[string]*resolverState
}

// resolverState is the per-resolver mutable state.
type resolverState struct {
	// record is the health record we are updating.
	record model.HealthRecord

	// runFailures counts in-run consecutive failures.
	runFailures int64

	// quickFailed is latched once runFailures reaches the threshold.
	quickFailed bool
}

// NewTracker creates a new Tracker using thresholds from config.
func NewTracker(config model.Config, logger model.Logger) *Tracker {
	return &Tracker{
		logger:                 model.ValidLoggerOrDefault(logger),
		maxConsecutiveFailures: config.MaxConsecutiveFailures,
		minSuccessRate:         config.MinSuccessRate,
		quickFailThreshold:     config.QuickFailThreshold,
		states:                 make(map[string]*resolverState),
	}
}

// Register seeds the tracker with a resolver's persisted record. A
// resolver that is never registered starts from a fresh record.
func (t *Tracker) Register(resolver model.Resolver, record model.HealthRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[resolver.Key()] = &resolverState{record: record}
}

// getLocked returns the state for a resolver, creating a fresh one
// if needed. The caller must hold t.mu.
func (t *Tracker) getLocked(resolver model.Resolver) *resolverState {
	state, found := t.states[resolver.Key()]
	if !found {
		state = &resolverState{}
		t.states[resolver.Key()] = state
	}
	return state
}

// OnSuccess records a successful query outcome for a resolver. Any
// success resets both the persisted consecutive-failure counter and
// the in-run quick-fail counter.
func (t *Tracker) OnSuccess(resolver model.Resolver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.getLocked(resolver)
	state.record.TotalQueries++
	state.record.TotalSuccesses++
	state.record.ConsecutiveFailures = 0
	state.runFailures = 0
}

// OnFailure records a failed query outcome for a resolver, possibly
// transitioning it to dropped or latching the quick-fail signal.
func (t *Tracker) OnFailure(resolver model.Resolver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.getLocked(resolver)
	state.record.TotalQueries++
	state.record.ConsecutiveFailures++
	if !state.record.Dropped && state.record.ConsecutiveFailures >= t.maxConsecutiveFailures {
		state.record.Dropped = true
		t.logger.Warnf(
			"health: dropping %s after %d consecutive failures",
			resolver, state.record.ConsecutiveFailures,
		)
	}
	state.runFailures++
	if !state.quickFailed && state.runFailures >= t.quickFailThreshold {
		state.quickFailed = true
		t.logger.Warnf(
			"health: quick fail triggered for %s: skipping its remaining domains",
			resolver,
		)
	}
}

// QuickFailed returns whether the quick-fail signal is latched for
// the given resolver in this run.
func (t *Tracker) QuickFailed(resolver model.Resolver) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getLocked(resolver).quickFailed
}

// Record returns the resolver's health record updated with the
// outcomes observed so far in this run.
func (t *Tracker) Record(resolver model.Resolver) model.HealthRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getLocked(resolver).record
}

// Unhealthy returns whether the resolver's historical success rate
// is below the configured minimum. This flag is informative and does
// not influence the drop transition.
func (t *Tracker) Unhealthy(resolver model.Resolver) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.getLocked(resolver)
	return state.record.SuccessRate() < t.minSuccessRate
}
