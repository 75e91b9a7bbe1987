package workflow

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunGate_TryAcquire_Success(t *testing.T) {
	gate := NewRunGate(nil)

	require.True(t, gate.TryAcquire())
	require.True(t, gate.IsHeld())
}

func TestRunGate_TryAcquire_Exclusive(t *testing.T) {
	gate := NewRunGate(nil)

	require.True(t, gate.TryAcquire())
	require.False(t, gate.TryAcquire())
}

func TestRunGate_Release_AllowsReacquire(t *testing.T) {
	gate := NewRunGate(nil)

	require.True(t, gate.TryAcquire())
	gate.Release()

	require.False(t, gate.IsHeld())
	require.True(t, gate.TryAcquire())
}

func TestRunGate_Release_UnheldIsNoop(t *testing.T) {
	gate := NewRunGate(nil)

	gate.Release()
	require.False(t, gate.IsHeld())
	require.True(t, gate.TryAcquire())
}

func TestRunGate_ConcurrentTriggers_ExactlyOneWinner(t *testing.T) {
	gate := NewRunGate(nil)

	var winners atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if gate.TryAcquire() {
				winners.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	require.Equal(t, int32(1), winners.Load())
	require.True(t, gate.IsHeld())
}

func TestRunGate_HeldInfo(t *testing.T) {
	gate := NewRunGate(nil)

	held, _, _ := gate.HeldInfo()
	require.False(t, held)

	require.True(t, gate.TryAcquire())
	time.Sleep(5 * time.Millisecond)

	held, since, duration := gate.HeldInfo()
	require.True(t, held)
	require.False(t, since.IsZero())
	require.Greater(t, duration, time.Duration(0))
}
