package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-kafka-rest/internal/clock"
	"github.com/MKhiriev/go-kafka-rest/internal/config"
	"github.com/MKhiriev/go-kafka-rest/internal/pool"
)

// ErrConsumerUnavailable is returned while no native broker client is
// wired into the build. The REST surface and the configuration path stay
// fully usable; only the fetch path reports it.
var ErrConsumerUnavailable = errors.New("simple consumer client is not available in this build")

// Message is one record fetched from a topic-partition. Key and value are
// raw bytes; the HTTP layer base64-encodes them via JSON marshalling.
type Message struct {
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Offset    int64  `json:"offset"`
	Key       []byte `json:"key,omitempty"`
	Value     []byte `json:"value"`
}

// MessageSource supplies records for the consume endpoint. maxBytes is
// the per-request budget for unencoded key and value bytes.
type MessageSource interface {
	Fetch(ctx context.Context, topic string, partition int32, offset int64, maxBytes int64) ([]Message, error)
}

// SimpleConsumer is one broker-connection-level consumer handle able to
// fetch from a single topic-partition.
type SimpleConsumer interface {
	Fetch(ctx context.Context, topic string, partition int32, offset int64, maxBytes int64) ([]Message, error)
	Close() error
}

// PooledSource serves fetches from a bounded pool of SimpleConsumers,
// sized and timed by the resolved proxy configuration.
type PooledSource struct {
	pool    *pool.Pool[SimpleConsumer]
	clk     clock.Clock
	maxIdle time.Duration
}

// NewPooledSource builds a PooledSource. factory creates consumer handles
// on demand; pool bounds and the idle deadline come from cfg.
func NewPooledSource(factory pool.Factory[SimpleConsumer], cfg *config.ProxyConfig) *PooledSource {
	p := pool.New(
		factory,
		cfg.PoolSizeMax(),
		time.Duration(cfg.PoolTimeoutMs())*time.Millisecond,
		cfg.Clock(),
	)

	return &PooledSource{
		pool:    p,
		clk:     cfg.Clock(),
		maxIdle: time.Duration(cfg.InstanceTimeoutMs()) * time.Millisecond,
	}
}

// Fetch acquires a consumer, runs the fetch, and returns the consumer to
// the pool. A consumer whose fetch failed is closed and discarded rather
// than reused.
func (s *PooledSource) Fetch(ctx context.Context, topic string, partition int32, offset int64, maxBytes int64) ([]Message, error) {
	consumer, err := s.pool.Acquire()
	if err != nil {
		return nil, err
	}

	messages, err := consumer.Fetch(ctx, topic, partition, offset, maxBytes)
	if err != nil {
		s.pool.Discard()
		_ = consumer.Close()
		return nil, err
	}

	if !s.pool.Release(consumer) {
		// pool closed while the fetch was in flight
		_ = consumer.Close()
	}

	return messages, nil
}

// EvictIdle closes consumers that have sat idle past the configured
// instance timeout. RunEviction calls it periodically.
func (s *PooledSource) EvictIdle() {
	for _, consumer := range s.pool.EvictIdle(s.maxIdle) {
		_ = consumer.Close()
	}
}

// RunEviction evicts idle consumers on every instance-timeout tick until
// ctx is canceled. It blocks; run it on its own goroutine. A non-positive
// instance timeout disables eviction entirely.
func (s *PooledSource) RunEviction(ctx context.Context) {
	if s.maxIdle <= 0 {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.clk.After(s.maxIdle):
			s.EvictIdle()
		}
	}
}

// Close shuts the pool and closes every idle consumer.
func (s *PooledSource) Close() {
	for _, consumer := range s.pool.Close() {
		_ = consumer.Close()
	}
}

// UnavailableFactory is the consumer factory used until the native broker
// fetch client is linked in; every acquisition fails with
// ErrConsumerUnavailable.
//
// TODO: replace with the native broker fetch client once the wire codec
// lands.
func UnavailableFactory() pool.Factory[SimpleConsumer] {
	return func() (SimpleConsumer, error) {
		return nil, ErrConsumerUnavailable
	}
}
