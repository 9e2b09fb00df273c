// Package scheduler implements the concurrent benchmark scheduler.
//
// The scheduler builds the resolvers x domains task set, dispatches it
// to a bounded pool of workers, and funnels every outcome through a
// single collector channel, so no per-resolver result list is ever
// touched by two goroutines at once. Before executing a task, a worker
// consults the health tracker: once a resolver's in-run failures reach
// the quick-fail threshold, its remaining tasks are skipped without
// counting as attempts. In-flight tasks always run to completion;
// there is no run-wide cancellation.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/proars/Test-DNS-Speed/internal/health"
	"github.com/proars/Test-DNS-Speed/internal/model"
	"github.com/proars/Test-DNS-Speed/internal/statsx"
)

// Executor executes a single query task. *dnsx.Executor implements
// this interface; tests use fakes.
type Executor interface {
	Execute(ctx context.Context, task model.QueryTask,
		timeout time.Duration, maxRetries int) model.QueryResult
}

// Scheduler runs a benchmark over a set of resolvers and domains. The
// zero value is invalid: fill all the fields marked as MANDATORY.
type Scheduler struct {
	// Config is the MANDATORY run configuration.
	Config model.Config

	// Executor is the MANDATORY query executor.
	Executor Executor

	// Logger is the optional logger to use.
	Logger model.Logger

	// Progress is the optional callback invoked after each task has
	// completed or been skipped, with the number of resolved tasks
	// and the total task count.
	Progress func(completed, total int)

	// Tracker is the MANDATORY health tracker, seeded by the caller
	// with each resolver's persisted record.
	Tracker *health.Tracker
}

// taskOutcome is what a worker sends to the collector: either a query
// result or a record that the task was skipped by quick-fail.
type taskOutcome struct {
	result  model.QueryResult
	skipped bool
	task    model.QueryTask
}

// Run benchmarks every resolver against every domain and returns a
// report per resolver. It returns once every task has completed or
// been skipped by quick-fail.
func (s *Scheduler) Run(
	ctx context.Context, resolvers []model.Resolver,
	domains []string) map[model.Resolver]*model.ResolverReport {
	logger := model.ValidLoggerOrDefault(s.Logger)
	total := len(resolvers) * len(domains)

	// generate tasks grouped by resolver, so a quick-failing
	// resolver's tasks are skipped as early as possible
	tasks := make(chan model.QueryTask)
	go func() {
		defer close(tasks)
		for _, resolver := range resolvers {
			for ordinal, domain := range domains {
				tasks <- model.QueryTask{
					Resolver: resolver,
					Domain:   domain,
					Ordinal:  ordinal,
				}
			}
		}
	}()

	// spawn worker goroutines
	outcomes := make(chan taskOutcome)
	wg := &sync.WaitGroup{}
	workers := s.Config.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, logger, tasks, outcomes)
		}()
	}

	// close the outcomes channel when all workers are done
	go func() {
		defer close(outcomes)
		wg.Wait()
	}()

	// collect: the collector is the only goroutine appending to the
	// per-resolver result lists
	collected := make(map[model.Resolver][]model.QueryResult)
	completed := 0
	for outcome := range outcomes {
		completed++
		if s.Progress != nil {
			s.Progress(completed, total)
		}
		if outcome.skipped {
			logger.Debugf(
				"scheduler: %s: query for %s not dispatched: %s",
				outcome.task.Resolver.Address, outcome.task.Domain, model.KindCancelled,
			)
			continue
		}
		key := outcome.result.Task.Resolver
		collected[key] = append(collected[key], outcome.result)
	}

	return s.buildReports(resolvers, collected)
}

// worker drains the tasks channel. For each task it first checks the
// quick-fail latch, then executes the query and feeds the outcome to
// the health tracker before handing it to the collector, so that the
// latch is already updated when later tasks are picked up.
func (s *Scheduler) worker(
	ctx context.Context, logger model.Logger,
	tasks <-chan model.QueryTask, outcomes chan<- taskOutcome) {
	for task := range tasks {
		if s.Tracker.QuickFailed(task.Resolver) {
			outcomes <- taskOutcome{task: task, skipped: true}
			continue
		}
		result := s.Executor.Execute(ctx, task, s.Config.Timeout, s.Config.MaxRetries)
		if result.Succeeded() {
			s.Tracker.OnSuccess(task.Resolver)
		} else {
			s.Tracker.OnFailure(task.Resolver)
			logger.Warnf(
				"scheduler: %s: query for %s failed: %s (attempts=%d)",
				task.Resolver.Address, task.Domain, result.Failure, result.Attempts,
			)
		}
		outcomes <- taskOutcome{result: result, task: task}
	}
}

// buildReports reduces the collected results into per-resolver reports.
func (s *Scheduler) buildReports(
	resolvers []model.Resolver,
	collected map[model.Resolver][]model.QueryResult) map[model.Resolver]*model.ResolverReport {
	reports := make(map[model.Resolver]*model.ResolverReport)
	for _, resolver := range resolvers {
		results := collected[resolver]
		// completion order is unconstrained; restore task order
		sort.Slice(results, func(i, j int) bool {
			return results[i].Task.Ordinal < results[j].Task.Ordinal
		})
		reports[resolver] = &model.ResolverReport{
			Resolver:    resolver,
			Stats:       statsx.Aggregate(results),
			Health:      s.Tracker.Record(resolver),
			QuickFailed: s.Tracker.QuickFailed(resolver),
			Unhealthy:   s.Tracker.Unhealthy(resolver),
		}
	}
	return reports
}
