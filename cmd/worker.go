package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/runtime"
	"github.com/0xPolygon/zero-coordinator/worker"
	"github.com/urfave/cli/v2"
)

func startWorker(cliCtx *cli.Context) error {
	c, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	logger := log.WithFields("module", "worker")

	wr, err := runtime.NewWorkerRuntime(c.Runtime, c.Broker, newLocalProver(c))
	if err != nil {
		log.Fatalf("failed to build the worker runtime: %v", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	path, err := worker.Run(cliCtx.Context, wr.MainLoop, signals)
	logger.Infof("worker stopped by %s", path)
	if errClose := wr.Close(); errClose != nil {
		logger.Errorf("error closing the worker runtime: %v", errClose)
	}
	return err
}
