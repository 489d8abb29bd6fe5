package coordinator

import (
	"context"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 30 * time.Second

// Runtime is the proving runtime owned by the coordinator
type Runtime interface {
	ProofRuntime
	Close() error
}

// Coordinator ties the intake server, the queue and the dispatcher together
// and owns the runtime.
type Coordinator struct {
	logger     *log.Logger
	cfg        Config
	queue      *Queue
	server     *Server
	dispatcher *Dispatcher
	runtime    Runtime
}

// New builds a coordinator. Nothing runs until Run is called.
func New(logger *log.Logger, cfg Config, rt Runtime, fetcher Fetcher, writer ProofWriter,
	ledger RequestStorer) *Coordinator {
	queue := NewQueue(cfg.QueueCapacity)
	return &Coordinator{
		logger:     logger,
		cfg:        cfg,
		queue:      queue,
		server:     NewServer(logger.WithFields("module", "server"), cfg, queue, ledger),
		dispatcher: NewDispatcher(logger.WithFields("module", "dispatcher"), queue, fetcher, rt, writer, ledger),
		runtime:    rt,
	}
}

// Listen binds the intake server address. Run calls it when it wasn't called before.
func (c *Coordinator) Listen() error {
	return c.server.Listen()
}

// Addr is the bound address of the intake server
func (c *Coordinator) Addr() string {
	return c.server.Addr()
}

// Run serves requests until ctx is done. Then it stops the server, closes
// the queue, waits for the dispatcher to drain it and closes the runtime.
// Requests already accepted are proved before Run returns.
func (c *Coordinator) Run(ctx context.Context) error {
	if c.server.listener == nil {
		if err := c.server.Listen(); err != nil {
			return err
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		return c.dispatcher.Run(context.WithoutCancel(ctx))
	})
	g.Go(func() error {
		defer c.queue.Close()
		return c.serve(ctx)
	})
	err := g.Wait()

	c.logger.Info("dispatcher stopped, closing runtime")
	if errClose := c.runtime.Close(); errClose != nil {
		c.logger.Errorf("error closing the runtime: %v", errClose)
	} else {
		c.logger.Info("runtime closed")
	}
	return err
}

func (c *Coordinator) serve(ctx context.Context) error {
	errServe := make(chan error, 1)
	go func() {
		errServe <- c.server.Serve()
	}()

	select {
	case err := <-errServe:
		if err != nil {
			c.logger.Errorf("intake server stopped: %v", err)
		}
		return err
	case <-ctx.Done():
	}

	c.logger.Info("stopping intake server")
	timeout := c.cfg.ShutdownTimeout.Duration
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.server.Shutdown(shutdownCtx); err != nil {
		c.logger.Warnf("error stopping intake server: %v", err)
	}
	return <-errServe
}
