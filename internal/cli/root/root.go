// Package root contains the root command.
package root

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

// Cmd is the root command.
var Cmd = kingpin.New("dnsspeed", "Benchmark the response time and reliability of DNS resolvers.")

// Command is syntax sugar for defining sub-commands.
var Command = Cmd.Command

// StateDir is the directory where we keep history and statistics.
var StateDir = Cmd.Flag(
	"state-dir", "Directory where to keep history and statistics",
).Default(defaultStateDir()).String()

var verbose = Cmd.Flag("verbose", "Enable verbose log output.").Short('v').Bool()

func init() {
	Cmd.PreAction(func(_ *kingpin.ParseContext) error {
		log.SetHandler(cli.Default)
		if *verbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	})
}

// defaultStateDir returns the default state directory. We fall back
// to a directory relative to the working directory when we cannot
// figure out the user's home.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dnsspeed"
	}
	return filepath.Join(home, ".dnsspeed")
}
