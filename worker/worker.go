package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/0xPolygon/zero-coordinator/log"
)

// ShutdownPath tells what stopped the worker
type ShutdownPath int

const (
	// ShutdownSignal is a termination signal, or the parent context ending
	ShutdownSignal ShutdownPath = iota + 1
	// ShutdownRuntime is the processing loop returning on its own
	ShutdownRuntime
)

func (p ShutdownPath) String() string {
	switch p {
	case ShutdownSignal:
		return "signal"
	case ShutdownRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("shutdown(%d)", int(p))
	}
}

// Loop is the processing loop of the runtime. It must return once ctx is done,
// finishing the task in progress first.
type Loop func(ctx context.Context) error

// Run races loop against signals. A signal cancels the context given to loop.
// Run returns as soon as one of them completes, without waiting for the other,
// along with the error of loop when it was the first to finish.
func Run(ctx context.Context, loop Loop, signals <-chan os.Signal) (ShutdownPath, error) {
	logger := log.WithFields("module", "worker")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- loop(ctx)
	}()

	select {
	case sig := <-signals:
		logger.Infof("received %s, stopping the worker", sig)
		return ShutdownSignal, nil
	case <-ctx.Done():
		logger.Info("context done, stopping the worker")
		return ShutdownSignal, nil
	case err := <-loopDone:
		if err != nil {
			logger.Errorf("runtime loop stopped: %v", err)
		} else {
			logger.Info("runtime loop finished")
		}
		return ShutdownRuntime, err
	}
}
