package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	zero "github.com/0xPolygon/zero-coordinator"
	"github.com/0xPolygon/zero-coordinator/config"
	"github.com/0xPolygon/zero-coordinator/coordinator"
	coordinatordb "github.com/0xPolygon/zero-coordinator/coordinator/db"
	"github.com/0xPolygon/zero-coordinator/fetch"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/objectstore"
	"github.com/0xPolygon/zero-coordinator/proofout"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/0xPolygon/zero-coordinator/proverstate"
	"github.com/0xPolygon/zero-coordinator/runtime"
	"github.com/urfave/cli/v2"
)

func startCoordinator(cliCtx *cli.Context) error {
	c, err := loadConfig(cliCtx)
	if err != nil {
		return err
	}
	logger := log.WithFields("module", "coordinator")

	var localProver prover.Prover
	if c.Runtime.Transport == runtime.TransportInMemory {
		localProver = newLocalProver(c)
	}

	rt, err := runtime.New(c.Runtime, c.Broker, localProver)
	if err != nil {
		log.Fatalf("failed to build the runtime: %v", err)
	}

	objects, err := objectstore.New(c.ObjectStore)
	if err != nil {
		log.Fatalf("failed to build the object store client: %v", err)
	}
	writer, err := proofout.New(log.WithFields("module", "proofout"), c.ProofOutput, objects)
	if err != nil {
		log.Fatalf("failed to set up the proof output: %v", err)
	}

	ledger := newLedger(cliCtx, c.Coordinator.DBPath)
	defer ledger.Close()

	coord := coordinator.New(logger, c.Coordinator, rt, fetch.NewSourceFetcher(nil, objects), writer, ledger)
	if err := coord.Listen(); err != nil {
		log.Fatalf("failed to start the server: %v", err)
	}

	ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = coord.Run(ctx)
	logger.Info("closing coordinator")
	return err
}

// loadConfig reads the service configuration, initializes the logger and
// resolves the runtime configuration. Any failure stops the process.
func loadConfig(cliCtx *cli.Context) (*config.Config, error) {
	c, err := config.Load(cliCtx)
	if err != nil {
		return nil, err
	}

	log.Init(c.Log)
	if c.Log.Environment == log.EnvironmentDevelopment {
		zero.PrintVersion(os.Stdout)
		log.Info("Starting application")
	} else if c.Log.Environment == log.EnvironmentProduction {
		logVersion()
	}

	c.Runtime, err = config.ResolveRuntimeConfig(log.WithFields("module", "config"), config.OSEnvironment)
	if err != nil {
		log.Fatal(err)
	}
	return c, nil
}

// newLocalProver resolves and initializes the prover state of this process
func newLocalProver(c *config.Config) prover.Prover {
	logger := log.WithFields("module", "prover")

	psCfg, err := config.ResolveProverStateConfig(logger, config.OSEnvironment)
	if err != nil {
		log.Fatal(err)
	}
	c.ProverState = psCfg

	if err := proverstate.NewManager(logger, psCfg, c.Prover.CircuitDir).Initialize(); err != nil {
		log.Fatalf("failed to initialize the prover state: %v", err)
	}
	return prover.NewTestOnlyProver(logger)
}

func newLedger(cliCtx *cli.Context, dbPath string) *coordinatordb.RequestStorage {
	logger := log.WithFields("module", "coordinator-db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatalf("failed to create the ledger dir: %v", err)
	}
	ledger, err := coordinatordb.NewRequestStorage(logger, dbPath)
	if err != nil {
		log.Fatalf("failed to open the request ledger: %v", err)
	}
	interrupted, err := ledger.FailInterrupted(cliCtx.Context)
	if err != nil {
		log.Fatalf("failed to update the request ledger: %v", err)
	}
	if interrupted > 0 {
		logger.Warnf("%d requests of a previous run were interrupted, marked as failed", interrupted)
	}
	return ledger
}
