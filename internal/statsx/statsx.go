// Package statsx reduces a resolver's raw query results into
// latency statistics and a success rate.
package statsx

import (
	"errors"

	"github.com/montanaflynn/stats"
	"github.com/proars/Test-DNS-Speed/internal/model"
	"github.com/proars/Test-DNS-Speed/internal/runtimex"
)

// Aggregate computes run statistics over the given outcomes. The
// latency fields are computed over successful outcomes only; when
// there are no successes they remain undefined (Defined is false),
// while SuccessRate and TotalAttempts are reported regardless. The
// standard deviation is the population standard deviation.
func Aggregate(outcomes []model.QueryResult) model.ResolverRunStats {
	var latencies stats.Float64Data
	for _, res := range outcomes {
		if res.Succeeded() {
			latencies = append(latencies, res.LatencyMs)
		}
	}
	out := model.ResolverRunStats{TotalAttempts: len(outcomes)}
	if len(outcomes) > 0 {
		out.SuccessRate = float64(len(latencies)) / float64(len(outcomes))
	}
	min, err := stats.Min(latencies)
	if errors.Is(err, stats.EmptyInputErr) {
		return out
	}
	runtimex.PanicOnError(err, "stats.Min failed")
	out.Min = min
	out.Max = mustCompute(stats.Max, latencies)
	out.Mean = mustCompute(stats.Mean, latencies)
	out.Median = mustCompute(stats.Median, latencies)
	out.StdDev = mustCompute(stats.StandardDeviationPopulation, latencies)
	out.Defined = true
	return out
}

// mustCompute invokes fn, which cannot fail on nonempty input.
func mustCompute(fn func(stats.Float64Data) (float64, error), data stats.Float64Data) float64 {
	value, err := fn(data)
	runtimex.PanicOnError(err, "statsx: cannot compute statistic")
	return value
}
