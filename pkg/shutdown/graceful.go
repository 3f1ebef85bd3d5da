package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain function (driver Close, pool Close) to Stoppable.
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error { return f(ctx) }

// Once wraps a resource cleanup so that it runs at most once, whether it is
// reached from Graceful or from a deferred call.
func Once(cleanup func()) StopFunc {
	var once sync.Once
	return func(context.Context) error {
		once.Do(cleanup)
		return nil
	}
}

// Graceful blocks until one of signals arrives or ctx is done, then stops
// every target in order within timeout.
func Graceful(ctx context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) error {
	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, t := range targets {
		if t == nil {
			continue
		}
		if err := t.Shutdown(stopCtx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
		return err
	}

	log.Info("graceful shutdown completed successfully")
	return nil
}
