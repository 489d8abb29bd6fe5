package main

import (
	"os"

	zero "github.com/0xPolygon/zero-coordinator"
	"github.com/0xPolygon/zero-coordinator/config"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/urfave/cli/v2"
)

const appName = "zero"

var (
	configFileFlag = cli.StringSliceFlag{
		Name:     config.FlagCfg,
		Aliases:  []string{"c"},
		Usage:    "Configuration file(s)",
		Required: false,
	}
	envFileFlag = cli.StringFlag{
		Name:     config.FlagEnvFile,
		Usage:    "Dotenv `FILE` loaded at start up, never overriding the environment",
		Value:    ".env",
		Required: false,
	}
	schemaFlag = cli.BoolFlag{
		Name:     config.FlagSchema,
		Usage:    "Print the JSON schema of the configuration file instead of the default values",
		Required: false,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Batch proving coordinator and worker"
	app.Version = zero.Version
	app.Flags = []cli.Flag{&envFileFlag}
	app.Before = func(cliCtx *cli.Context) error {
		return initProcess(cliCtx.String(config.FlagEnvFile))
	}
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "config",
			Aliases: []string{},
			Usage:   "Print the default configuration, or its JSON schema",
			Action:  configCmd,
			Flags:   []cli.Flag{&schemaFlag},
		},
		{
			Name:    "coordinator",
			Aliases: []string{},
			Usage:   "Run the intake server and the dispatcher",
			Action:  startCoordinator,
			Flags:   []cli.Flag{&configFileFlag},
		},
		{
			Name:    "worker",
			Aliases: []string{},
			Usage:   "Run a worker proving the tasks of the broker",
			Action:  startWorker,
			Flags:   []cli.Flag{&configFileFlag},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
