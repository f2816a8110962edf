package email

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/attendance/internal/pkg/metrics"
)

// Dispatcher runs notifications in the background so the request does not wait on SMTP.
// Failures are logged and counted, never returned.
type Dispatcher struct {
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher whose sends are bounded by timeout
func NewDispatcher(timeout time.Duration, logger zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{timeout: timeout, logger: logger}
}

// Go sends in a new goroutine, detached from the caller's context
func (d *Dispatcher) Go(kind string, send func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		err := send(ctx)
		metrics.ObserveNotification(kind, err)
		if err != nil {
			d.logger.Error().Err(err).Str("kind", kind).Msg("Background notification failed")
		}
	}()
}

// Wait blocks until in-flight sends finish or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
