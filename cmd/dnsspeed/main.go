package main

import (
	"github.com/apex/log"

	"github.com/proars/Test-DNS-Speed/internal/cli/app"
	_ "github.com/proars/Test-DNS-Speed/internal/cli/list"
	_ "github.com/proars/Test-DNS-Speed/internal/cli/reset"
	_ "github.com/proars/Test-DNS-Speed/internal/cli/run"
	_ "github.com/proars/Test-DNS-Speed/internal/cli/version"
)

func main() {
	if err := app.Run(); err != nil {
		log.WithError(err).Fatal("main exit")
	}
}
