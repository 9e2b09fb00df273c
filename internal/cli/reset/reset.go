// Package reset implements the reset command, which reinstates
// dropped resolvers by clearing their persisted health records.
package reset

import (
	"net"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/proars/Test-DNS-Speed/internal/cli/root"
	"github.com/proars/Test-DNS-Speed/internal/inputs"
	"github.com/proars/Test-DNS-Speed/internal/kvstore"
	"github.com/proars/Test-DNS-Speed/internal/model"
	"github.com/proars/Test-DNS-Speed/internal/registry"
)

func init() {
	cmd := root.Command("reset", "Reset the health history of resolvers")
	address := cmd.Flag(
		"address", "Only reset the resolver with this address").String()
	resolversFile := cmd.Flag(
		"resolvers-file", "File listing the configured resolvers, one `address,label` per line").String()

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
		if *address == "" {
			if err := reg.ResetAll(); err != nil {
				return err
			}
			log.Info("reset: cleared the whole health history")
			return nil
		}
		target := *address
		if ip := net.ParseIP(target); ip != nil {
			// registry addresses are canonical host:port
			target = net.JoinHostPort(target, "53")
		}
		count := 0
		for _, resolver := range append(reg.ActiveResolvers(), droppedResolvers(reg)...) {
			if resolver.Address != target {
				continue
			}
			if err := reg.Reset(resolver); err != nil {
				return err
			}
			count++
		}
		log.Infof("reset: cleared %d record(s) for %s", count, *address)
		return nil
	})
}

func droppedResolvers(reg *registry.Registry) []model.Resolver {
	var out []model.Resolver
	for _, report := range reg.DroppedResolvers() {
		out = append(out, report.Resolver)
	}
	return out
}
