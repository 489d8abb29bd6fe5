package main

import (
	"os"

	"github.com/0xPolygon/zero-coordinator/config"
	"github.com/urfave/cli/v2"
)

func configCmd(cliCtx *cli.Context) error {
	if cliCtx.Bool(config.FlagSchema) {
		schema, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(schema, '\n'))
		return err
	}
	_, err := os.Stdout.WriteString(config.DefaultValues)
	return err
}
