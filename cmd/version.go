package main

import (
	"os"

	zero "github.com/0xPolygon/zero-coordinator"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/urfave/cli/v2"
)

func versionCmd(*cli.Context) error {
	zero.PrintVersion(os.Stdout)
	return nil
}

func logVersion() {
	log.Infow("Starting application", zero.GetVersion().KeyValues()...)
}
