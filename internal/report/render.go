package report

//
// Console rendering
//

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/proars/Test-DNS-Speed/internal/model"
)

// RenderDropped writes the preamble listing resolvers that were
// dropped before the run began.
func RenderDropped(w io.Writer, dropped []model.ResolverReport) {
	if len(dropped) <= 0 {
		return
	}
	fmt.Fprintln(w, color.YellowString(
		"⚠️  The following DNS resolvers have been dropped due to consistent failures:"))
	for _, report := range dropped {
		fmt.Fprintf(w, "   - %s: %d consecutive failures\n",
			report.Resolver, report.Health.ConsecutiveFailures)
	}
	fmt.Fprintln(w)
}

// Render writes the per-resolver result lines followed by a summary
// table. The reports slice must already be ordered with Sort.
func Render(w io.Writer, reports []*model.ResolverReport, config model.Config, numDomains int) {
	for _, report := range reports {
		renderLine(w, report, config, numDomains)
	}
	fmt.Fprintln(w)
	renderTable(w, reports)
}

// renderLine writes a single resolver's result line.
func renderLine(w io.Writer, report *model.ResolverReport, config model.Config, numDomains int) {
	successes := int(math.Round(float64(report.Stats.TotalAttempts) * report.Stats.SuccessRate))
	if report.Stats.Defined {
		line := fmt.Sprintf(
			"✅ %s: average response time: %.2f ms (%d/%d successful queries)",
			report.Resolver, report.Stats.Mean, successes, numDomains,
		)
		if report.QuickFailed {
			line += " [quick failed]"
		}
		fmt.Fprintln(w, color.GreenString("%s", line))
		return
	}
	remaining := config.MaxConsecutiveFailures - report.Health.ConsecutiveFailures
	if remaining < 0 {
		remaining = 0
	}
	fmt.Fprintln(w, color.RedString(
		"❌ %s: no successful queries (failed %d times, %d attempts remaining)",
		report.Resolver, report.Health.ConsecutiveFailures, remaining,
	))
}

// renderTable writes the summary table.
func renderTable(w io.Writer, reports []*model.ResolverReport) {
	const rowFormat = "%-40s %10s %10s %10s %10s %10s %9s\n"
	fmt.Fprintf(w, rowFormat,
		"Resolver", "Min (ms)", "Max (ms)", "Avg (ms)", "Median", "StdDev", "Success")
	for _, report := range reports {
		if !report.Stats.Defined {
			fmt.Fprintf(w, rowFormat,
				report.Resolver.String(), "-", "-", "-", "-", "-",
				fmt.Sprintf("%.1f%%", report.Stats.SuccessRate*100))
			continue
		}
		fmt.Fprintf(w, rowFormat,
			report.Resolver.String(),
			fmt.Sprintf("%.2f", report.Stats.Min),
			fmt.Sprintf("%.2f", report.Stats.Max),
			fmt.Sprintf("%.2f", report.Stats.Mean),
			fmt.Sprintf("%.2f", report.Stats.Median),
			fmt.Sprintf("%.2f", report.Stats.StdDev),
			fmt.Sprintf("%.1f%%", report.Stats.SuccessRate*100),
		)
	}
}
