package email

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/attendance/internal/pkg/metrics"
)

func TestDispatcher_RunsDetachedFromCaller(t *testing.T) {
	d := NewDispatcher(time.Second, zerolog.Nop())

	caller, cancel := context.WithCancel(context.Background())
	cancel()

	var sent atomic.Bool
	d.Go("test_detached", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		sent.Store(ctx.Err() == nil && caller.Err() != nil)
		return nil
	})

	require.NoError(t, d.Wait(context.Background()))
	assert.True(t, sent.Load())
}

func TestDispatcher_FailureIsLoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(time.Second, zerolog.New(&buf))
	before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("test_failure", metrics.OutcomeFailure))

	d.Go("test_failure", func(context.Context) error { return errors.New("smtp down") })
	require.NoError(t, d.Wait(context.Background()))

	assert.Contains(t, buf.String(), "smtp down")
	after := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("test_failure", metrics.OutcomeFailure))
	assert.Equal(t, before+1, after)
}

func TestDispatcher_WaitHonoursContext(t *testing.T) {
	d := NewDispatcher(time.Second, zerolog.Nop())
	release := make(chan struct{})
	d.Go("test_slow", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, d.Wait(context.Background()))
}
