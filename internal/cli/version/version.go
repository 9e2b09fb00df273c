// Package version implements the version command.
package version

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/proars/Test-DNS-Speed/internal/cli/root"
	versioninfo "github.com/proars/Test-DNS-Speed/internal/version"
)

func init() {
	cmd := root.Command("version", "Show version information")
	cmd.Action(func(_ *kingpin.ParseContext) error {
		fmt.Fprintln(os.Stdout, versioninfo.Version)
		return nil
	})
}
