package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobzone/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// Graceful blocks until one of signals arrives, then stops every Stoppable in
// order within a shared timeout.
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, stoppables ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := Stop(ctx, stoppables...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}

// Stop shuts down stoppables in order and returns the first error. Later
// stoppables still run after a failure.
func Stop(ctx context.Context, stoppables ...Stoppable) error {
	var first error
	for _, s := range stoppables {
		if s == nil {
			continue
		}
		if err := s.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
