package app

import (
	"context"
	"log"
	"time"

	"github.com/exads/chtop/internal/clickhouse"
	"github.com/exads/chtop/internal/config"
	"github.com/exads/chtop/internal/state"
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately. The cadence never backs off:
// transient failures are recorded in the store and retried on the next tick.
func StartPoller(ctx context.Context, store *state.Store, backend clickhouse.Backend, interval, timeout time.Duration) {
	if interval <= 0 {
		interval = config.DefaultRefresh
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refresh(ctx, store, backend, timeout)
		}
	}()
}

// refresh performs one bounded fetch and folds the result into the store.
// A slow or hung server fails the fetch via the timeout instead of stalling
// the loop.
func refresh(ctx context.Context, store *state.Store, backend clickhouse.Backend, timeout time.Duration) {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	procs, err := backend.ListProcesses(fetchCtx)
	if err != nil {
		store.Update(nil, err)
		if ctx.Err() == nil {
			log.Printf("process poll failed: %v", err)
		}
		return
	}
	store.Update(procs, nil)
}
