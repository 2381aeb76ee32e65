package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManual_NowAdvances verifies that Now only moves when Advance is
// called.
func TestManual_NowAdvances(t *testing.T) {
	start := time.Unix(100, 0)
	clk := NewManual(start)

	assert.Equal(t, start, clk.Now())
	assert.Equal(t, start, clk.Now())

	clk.Advance(5 * time.Second)
	assert.Equal(t, start.Add(5*time.Second), clk.Now())
}

// TestManual_AfterFiresOnDeadline verifies that After delivers once the
// accumulated advances reach the deadline, and not before.
func TestManual_AfterFiresOnDeadline(t *testing.T) {
	clk := NewManual(time.Unix(0, 0))
	ch := clk.After(10 * time.Second)

	clk.Advance(9 * time.Second)
	select {
	case <-ch:
		t.Fatal("fired before the deadline")
	default:
	}

	clk.Advance(time.Second)
	select {
	case fired := <-ch:
		assert.Equal(t, time.Unix(10, 0), fired)
	default:
		t.Fatal("did not fire at the deadline")
	}
}

// TestManual_AfterNonPositive verifies that a non-positive duration fires
// immediately.
func TestManual_AfterNonPositive(t *testing.T) {
	clk := NewManual(time.Unix(0, 0))

	select {
	case <-clk.After(0):
	default:
		t.Fatal("zero-duration After must fire immediately")
	}
}

// TestManual_Waiters verifies the pending-waiter count used by tests that
// need to synchronize with a timed wait.
func TestManual_Waiters(t *testing.T) {
	clk := NewManual(time.Unix(0, 0))
	require.Equal(t, 0, clk.Waiters())

	clk.After(time.Second)
	clk.After(2 * time.Second)
	assert.Equal(t, 2, clk.Waiters())

	clk.Advance(time.Second)
	assert.Equal(t, 1, clk.Waiters())
}

// TestSystem_Now sanity-checks the wall clock.
func TestSystem_Now(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	assert.False(t, now.Before(before))
}
