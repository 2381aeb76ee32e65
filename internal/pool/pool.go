// Package pool bounds the number of live low-level consumer handles kept
// per broker, honoring simpleconsumer.pool.size.max and
// simpleconsumer.pool.timeout.ms.
package pool

import (
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-kafka-rest/internal/clock"
)

// ErrAcquireTimeout is returned when no pooled handle becomes available
// within the configured pool timeout.
var ErrAcquireTimeout = errors.New("timed out waiting for a pooled consumer")

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("pool is closed")

// Factory creates a new pooled value when the pool has capacity but no
// idle value to hand out.
type Factory[T any] func() (T, error)

// Pool is a bounded pool of reusable values.
//
// maxSize 0 leaves the pool unbounded; timeout 0 makes Acquire wait
// indefinitely for a free slot. Idle values remember when they were
// released so EvictIdle can drop ones unused past a deadline.
type Pool[T any] struct {
	factory Factory[T]
	timeout time.Duration
	clk     clock.Clock

	slots chan struct{} // nil when unbounded

	mu     sync.Mutex
	idle   []entry[T]
	closed bool
}

type entry[T any] struct {
	value    T
	released time.Time
}

// New builds a pool from the resolved configuration values: maxSize from
// simpleconsumer.pool.size.max, timeout from simpleconsumer.pool.timeout.ms.
func New[T any](factory Factory[T], maxSize int, timeout time.Duration, clk clock.Clock) *Pool[T] {
	p := &Pool[T]{factory: factory, timeout: timeout, clk: clk}
	if maxSize > 0 {
		p.slots = make(chan struct{}, maxSize)
	}

	return p
}

// Acquire returns an idle value or creates a new one, waiting for a free
// slot when the pool is at capacity.
func (p *Pool[T]) Acquire() (T, error) {
	var zero T

	if p.slots != nil {
		if p.timeout <= 0 {
			p.slots <- struct{}{}
		} else {
			select {
			case p.slots <- struct{}{}:
			case <-p.clk.After(p.timeout):
				return zero, ErrAcquireTimeout
			}
		}
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.freeSlot()
		return zero, ErrClosed
	}
	if n := len(p.idle); n > 0 {
		e := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return e.value, nil
	}
	p.mu.Unlock()

	value, err := p.factory()
	if err != nil {
		p.freeSlot()
		return zero, err
	}

	return value, nil
}

// Release returns a value to the pool for reuse. It reports whether the
// pool accepted the value; after Close nothing is accepted and the caller
// still owns the value, including closing it.
func (p *Pool[T]) Release(value T) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.freeSlot()
		return false
	}
	p.idle = append(p.idle, entry[T]{value: value, released: p.clk.Now()})
	p.mu.Unlock()

	p.freeSlot()
	return true
}

// Discard drops a value without returning it to the pool, freeing its
// slot. Use it when the value is known to be broken.
func (p *Pool[T]) Discard() {
	p.freeSlot()
}

// EvictIdle removes and returns every idle value that was released more
// than maxIdle ago, so the caller can close it.
func (p *Pool[T]) EvictIdle(maxIdle time.Duration) []T {
	cutoff := p.clk.Now().Add(-maxIdle)

	p.mu.Lock()
	defer p.mu.Unlock()

	var evicted []T
	kept := p.idle[:0]
	for _, e := range p.idle {
		if e.released.Before(cutoff) || e.released.Equal(cutoff) {
			evicted = append(evicted, e.value)
		} else {
			kept = append(kept, e)
		}
	}
	p.idle = kept

	return evicted
}

// Close marks the pool closed and returns all idle values for the caller
// to dispose of. Values currently acquired stay valid; Release afterwards
// reports them rejected so their owner can dispose of them too.
func (p *Pool[T]) Close() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	out := make([]T, 0, len(p.idle))
	for _, e := range p.idle {
		out = append(out, e.value)
	}
	p.idle = nil

	return out
}

func (p *Pool[T]) freeSlot() {
	if p.slots == nil {
		return
	}
	select {
	case <-p.slots:
	default:
	}
}
