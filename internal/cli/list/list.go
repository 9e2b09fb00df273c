// Package list implements the list command.
package list

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/proars/Test-DNS-Speed/internal/cli/root"
	"github.com/proars/Test-DNS-Speed/internal/inputs"
	"github.com/proars/Test-DNS-Speed/internal/kvstore"
	"github.com/proars/Test-DNS-Speed/internal/registry"
)

func init() {
	cmd := root.Command("list", "List configured resolvers and their health")
	resolversFile := cmd.Flag(
		"resolvers-file", "File listing the resolvers to show, one `address,label` per line").String()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		resolvers, err := inputs.LoadResolvers(*resolversFile)
		if err != nil {
			return err
		}
		kvs, err := kvstore.NewFS(*root.StateDir)
		if err != nil {
			return err
		}
		reg := registry.New(kvs, log.Log, resolvers)
		for _, resolver := range reg.ActiveResolvers() {
			record := reg.HealthRecord(resolver)
			fmt.Fprintf(os.Stdout, "%s %s: %d/%d queries successful (%.1f%%)\n",
				color.GreenString("✓"), resolver,
				record.TotalSuccesses, record.TotalQueries, record.SuccessRate()*100)
		}
		for _, report := range reg.DroppedResolvers() {
			fmt.Fprintf(os.Stdout, "%s %s: dropped after %d consecutive failures\n",
				color.RedString("✗"), report.Resolver, report.Health.ConsecutiveFailures)
		}
		return nil
	})
}
