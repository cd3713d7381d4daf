package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Start preloads the configured images in the background and returns a
// channel closed on a termination signal.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	if urls := a.settings.Image.Preload; len(urls) > 0 {
		a.goroutine.Go(a.ctx, func(ctx context.Context) error {
			return a.Utils().PreloadImages(ctx, urls...)
		})
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		select {
		case <-sigint:
		case <-a.ctx.Done():
		}

		a.cancel()
		close(terminateChan)

		slog.Info("application gracefully shutdown")
	}()

	return terminateChan
}

// Stop cancels background work, waits for it, then closes resources in
// reverse order of acquisition.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if a.goroutine != nil {
		slog.InfoContext(ctx, "waiting for all goroutine to finish")
		if err := a.goroutine.Wait(); err != nil {
			slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		closer := a.closers[i]
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
