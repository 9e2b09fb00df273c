// Package report sorts and renders the per-run resolver reports.
package report

import (
	"sort"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// Sort orders reports the way the presentation layer expects them:
// resolvers with at least one success ascending by mean latency,
// followed by resolvers with zero successes. The sort is stable, so
// zero-success resolvers keep their configuration order. Resolvers
// dropped before the run began are not part of this slice; the
// renderer appends them at the end.
func Sort(reports []*model.ResolverReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		left, right := reports[i].Stats, reports[j].Stats
		if left.Defined != right.Defined {
			return left.Defined
		}
		if !left.Defined {
			return false
		}
		return left.Mean < right.Mean
	})
}
