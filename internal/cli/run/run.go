// Package run implements the run command.
package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/proars/Test-DNS-Speed/internal/cli/root"
	"github.com/proars/Test-DNS-Speed/internal/dnsx"
	"github.com/proars/Test-DNS-Speed/internal/health"
	"github.com/proars/Test-DNS-Speed/internal/inputs"
	"github.com/proars/Test-DNS-Speed/internal/kvstore"
	"github.com/proars/Test-DNS-Speed/internal/model"
	"github.com/proars/Test-DNS-Speed/internal/registry"
	"github.com/proars/Test-DNS-Speed/internal/report"
	"github.com/proars/Test-DNS-Speed/internal/scheduler"
	"github.com/schollz/progressbar/v3"
)

func init() {
	cmd := root.Command("run", "Run the benchmark").Default()
	timeout := cmd.Flag(
		"timeout", "Timeout for a single DNS query").Default("1s").Duration()
	retries := cmd.Flag(
		"retries", "Maximum number of retries for failed queries").Default("1").Int()
	workers := cmd.Flag(
		"workers", "Number of parallel workers").Default("10").Int()
	maxFailures := cmd.Flag(
		"max-failures", "Consecutive failures before dropping a resolver").Default("3").Int64()
	minSuccessRate := cmd.Flag(
		"min-success-rate", "Minimum success rate to consider a resolver healthy").Default("0.5").Float64()
	quickFail := cmd.Flag(
		"quick-fail", "In-run consecutive failures before skipping a resolver's remaining domains").Default("3").Int64()
	resolversFile := cmd.Flag(
		"resolvers-file", "File listing the resolvers to test, one `address,label` per line").String()
	domainsFile := cmd.Flag(
		"domains-file", "File listing the domains to test, one per line").String()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		config := model.Config{
			Timeout:                *timeout,
			MaxRetries:             *retries,
			Workers:                *workers,
			MaxConsecutiveFailures: *maxFailures,
			MinSuccessRate:         *minSuccessRate,
			QuickFailThreshold:     *quickFail,
		}
		if err := config.Check(); err != nil {
			return err
		}
		resolvers, err := inputs.LoadResolvers(*resolversFile)
		if err != nil {
			return err
		}
		domains, err := inputs.LoadDomains(*domainsFile)
		if err != nil {
			return err
		}
		return Main(config, resolvers, domains)
	})
}

// Main runs a benchmark with the given configuration and inputs.
func Main(config model.Config, resolvers []model.Resolver, domains []string) error {
	logger := log.Log
	kvs, err := kvstore.NewFS(*root.StateDir)
	if err != nil {
		return err
	}
	reg := registry.New(kvs, logger, resolvers)

	report.RenderDropped(os.Stdout, reg.DroppedResolvers())
	active := reg.ActiveResolvers()
	if len(active) <= 0 {
		logger.Warn("run: no active resolvers, nothing to do")
		return nil
	}

	tracker := health.NewTracker(config, logger)
	for _, resolver := range active {
		tracker.Register(resolver, reg.HealthRecord(resolver))
	}

	bar := newProgressBar(len(active) * len(domains))
	sched := &scheduler.Scheduler{
		Config:   config,
		Executor: &dnsx.Executor{Logger: logger, Querier: &dnsx.MiekgQuerier{}},
		Logger:   logger,
		Progress: func(completed, total int) {
			_ = bar.Add(1)
		},
		Tracker: tracker,
	}
	started := time.Now()
	reports := sched.Run(context.Background(), active, domains)
	_ = bar.Finish()
	logger.Infof("run: tested %d resolvers against %d domains in %s",
		len(active), len(domains), time.Since(started))

	ordered := make([]*model.ResolverReport, 0, len(reports))
	for _, resolver := range active {
		ordered = append(ordered, reports[resolver])
	}
	report.Sort(ordered)
	fmt.Fprintln(os.Stdout)
	report.Render(os.Stdout, ordered, config, len(domains))

	flat := make([]model.ResolverReport, 0, len(ordered))
	for _, rep := range ordered {
		flat = append(flat, *rep)
	}
	if err := reg.ApplyReports(flat); err != nil {
		logger.Warnf("run: cannot persist state: %s", err.Error())
		return err
	}
	return nil
}

// newProgressBar creates the progress bar to show the user progress.
func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		int64(total),
		progressbar.OptionSetDescription("Testing DNS resolvers"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stdout, "\n")
		}),
		progressbar.OptionSetWriter(os.Stdout),
	)
}
