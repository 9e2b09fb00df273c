package dnsx

//
// Query execution with bounded retries
//

import (
	"context"
	"time"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// Executor executes query tasks. It retries transient failures
// (timeouts, unreachable networks) and fails fast on everything else.
// It carries no mutable state, so a single Executor may serve an
// arbitrary number of concurrent workers.
type Executor struct {
	// Logger is the optional logger to use.
	Logger model.Logger

	// Querier is the mandatory query primitive.
	Querier Querier
}

// Execute runs the given task. The returned result carries either the
// latency of the first successful attempt or the kind of the last
// error, along with how many attempts we performed overall.
func (e *Executor) Execute(
	ctx context.Context, task model.QueryTask,
	timeout time.Duration, maxRetries int) model.QueryResult {
	logger := model.ValidLoggerOrDefault(e.Logger)
	var kind model.ErrorKind
	attempts := 0
	for i := 0; i <= maxRetries; i++ {
		attempts++
		rtt, err := e.Querier.Query(ctx, task.Resolver.Address, task.Domain, timeout)
		if err == nil {
			return model.QueryResult{
				Task:      task,
				LatencyMs: float64(rtt) / float64(time.Millisecond),
				Attempts:  attempts,
			}
		}
		kind = Classify(err)
		logger.Debugf(
			"dnsx: %s: query for %s failed: %s (%s, attempt %d/%d)",
			task.Resolver.Address, task.Domain, err.Error(), kind, attempts, maxRetries+1,
		)
		if !Retryable(kind) {
			break
		}
	}
	return model.QueryResult{Task: task, Failure: kind, Attempts: attempts}
}
