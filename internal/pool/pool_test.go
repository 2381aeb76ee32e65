package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-kafka-rest/internal/clock"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func countingFactory(created *int) Factory[int] {
	return func() (int, error) {
		*created++
		return *created, nil
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached in time")
		}
		time.Sleep(time.Millisecond)
	}
}

// ── Acquire / Release ─────────────────────────────────────────────────────────

// TestPool_AcquireCreatesThenReuses verifies that Release makes a value
// available for the next Acquire instead of creating a new one.
func TestPool_AcquireCreatesThenReuses(t *testing.T) {
	created := 0
	p := New(countingFactory(&created), 5, 0, clock.NewManual(time.Unix(0, 0)))

	v, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	p.Release(v)

	v, err = p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, created)
}

// TestPool_BoundedBlocksUntilRelease verifies that a full pool blocks
// Acquire until a value is released.
func TestPool_BoundedBlocksUntilRelease(t *testing.T) {
	created := 0
	clk := clock.NewManual(time.Unix(0, 0))
	p := New(countingFactory(&created), 1, time.Second, clk)

	first, err := p.Acquire()
	require.NoError(t, err)

	got := make(chan int, 1)
	go func() {
		v, err := p.Acquire()
		if err == nil {
			got <- v
		}
	}()

	// the second Acquire is now parked on the pool timeout
	waitFor(t, func() bool { return clk.Waiters() == 1 })

	p.Release(first)
	waitFor(t, func() bool { return len(got) == 1 })
	assert.Equal(t, first, <-got)
	assert.Equal(t, 1, created)
}

// TestPool_AcquireTimesOut verifies that an exhausted pool fails Acquire
// with ErrAcquireTimeout once the configured wait elapses.
func TestPool_AcquireTimesOut(t *testing.T) {
	created := 0
	clk := clock.NewManual(time.Unix(0, 0))
	p := New(countingFactory(&created), 1, time.Second, clk)

	_, err := p.Acquire()
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Acquire()
		errCh <- err
	}()

	waitFor(t, func() bool { return clk.Waiters() == 1 })
	clk.Advance(time.Second)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrAcquireTimeout)
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire did not time out")
	}
}

// TestPool_Unbounded verifies that maxSize 0 never blocks.
func TestPool_Unbounded(t *testing.T) {
	created := 0
	p := New(countingFactory(&created), 0, 0, clock.NewManual(time.Unix(0, 0)))

	for i := 0; i < 100; i++ {
		_, err := p.Acquire()
		require.NoError(t, err)
	}
	assert.Equal(t, 100, created)
}

// TestPool_FactoryErrorFreesSlot verifies that a failed creation does not
// leak the capacity slot.
func TestPool_FactoryErrorFreesSlot(t *testing.T) {
	calls := 0
	p := New(func() (int, error) {
		calls++
		if calls == 1 {
			return 0, assert.AnError
		}
		return calls, nil
	}, 1, time.Second, clock.NewManual(time.Unix(0, 0)))

	_, err := p.Acquire()
	require.ErrorIs(t, err, assert.AnError)

	v, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

// ── EvictIdle ─────────────────────────────────────────────────────────────────

// TestPool_EvictIdle verifies that only values idle past the deadline are
// evicted.
func TestPool_EvictIdle(t *testing.T) {
	created := 0
	clk := clock.NewManual(time.Unix(0, 0))
	p := New(countingFactory(&created), 0, 0, clk)

	old, _ := p.Acquire()
	p.Release(old)

	clk.Advance(time.Minute)
	fresh, _ := p.Acquire()
	p.Release(fresh)

	evicted := p.EvictIdle(30 * time.Second)
	assert.Empty(t, evicted, "freshly released value must not be evicted")

	clk.Advance(time.Minute)
	evicted = p.EvictIdle(30 * time.Second)
	assert.Len(t, evicted, 1)
}

// ── Close ─────────────────────────────────────────────────────────────────────

// TestPool_Close verifies that Close returns idle values and subsequent
// Acquires fail.
func TestPool_Close(t *testing.T) {
	created := 0
	p := New(countingFactory(&created), 0, 0, clock.NewManual(time.Unix(0, 0)))

	v, _ := p.Acquire()
	p.Release(v)

	idle := p.Close()
	assert.Equal(t, []int{v}, idle)

	_, err := p.Acquire()
	assert.ErrorIs(t, err, ErrClosed)
}

// TestPool_ReleaseRejectedAfterClose verifies that a value acquired
// before Close is not swallowed by a later Release: the caller is told it
// still owns the value.
func TestPool_ReleaseRejectedAfterClose(t *testing.T) {
	created := 0
	p := New(countingFactory(&created), 1, time.Second, clock.NewManual(time.Unix(0, 0)))

	v, err := p.Acquire()
	require.NoError(t, err)

	p.Close()
	assert.False(t, p.Release(v))

	// and a Release before Close is accepted
	p2 := New(countingFactory(&created), 1, time.Second, clock.NewManual(time.Unix(0, 0)))
	v, err = p2.Acquire()
	require.NoError(t, err)
	assert.True(t, p2.Release(v))
}
