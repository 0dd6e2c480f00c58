package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller(t *testing.T) {
	t.Run("polls until context is cancelled", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller(5*time.Millisecond, func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("errors do not stop the poller")
		})

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan struct{})
		go func() {
			p.Start(ctx)
			close(done)
		}()

		require.Eventually(t, func() bool {
			return calls.Load() >= 3
		}, time.Second, time.Millisecond)

		cancel()
		<-done
	})

	t.Run("stop", func(t *testing.T) {
		var calls atomic.Int32
		p := NewPoller(time.Hour, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		})

		done := make(chan struct{})
		go func() {
			p.Start(t.Context())
			close(done)
		}()

		require.Eventually(t, func() bool {
			return calls.Load() == 1
		}, time.Second, time.Millisecond)

		p.Stop()
		p.Stop()
		<-done
		assert.Equal(t, int32(1), calls.Load())
	})
}
