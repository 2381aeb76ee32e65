// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"math"

	"github.com/MKhiriev/go-kafka-rest/internal/clock"
)

// Names of the proxy's own configuration keys.
const (
	IDConfig                 = "id"
	ConsumerMaxThreadsConfig = "consumer.threads"
	ZookeeperConnectConfig   = "zookeeper.connect"
	SchemaRegistryURLConfig  = "schema.registry.url"
	FetchMinBytesConfig      = "consumer.fetch.min.bytes"
	IteratorTimeoutMsConfig  = "consumer.iterator.timeout.ms"
	IteratorBackoffMsConfig  = "consumer.iterator.backoff.ms"
	RequestTimeoutMsConfig   = "consumer.request.timeout.ms"
	RequestMaxBytesConfig    = "consumer.request.max.bytes"
	InstanceTimeoutMsConfig  = "consumer.instance.timeout.ms"
	PoolSizeMaxConfig        = "simpleconsumer.pool.size.max"
	PoolTimeoutMsConfig      = "simpleconsumer.pool.timeout.ms"
	ZKSessionTimeoutMsConfig = "client.zk.session.timeout.ms"

	// GroupIDConfig belongs to the embedded client's schema. The proxy
	// never reads it; it only force-sets it in the derived override view.
	GroupIDConfig = "group.id"
)

// FetchMinBytesRange bounds consumer.fetch.min.bytes. The range is shared
// with the per-instance consumer settings so both layers accept the same
// values, including the -1 sentinel that disables accumulation.
var FetchMinBytesRange = Between(-1, math.MaxInt32)

// ProxySchema returns the full schema of the proxy: the generic REST base
// extended with the consumer-proxy keys, in declaration order.
func ProxySchema() *Schema {
	return Extend(BaseRestSchema(),
		KeyDef{
			Name:       IDConfig,
			Type:       TypeString,
			Default:    "",
			Importance: ImportanceHigh,
			Doc: "Unique ID for this REST server instance, used when generating IDs for " +
				"consumers that do not specify one. Empty by default, which is fine for a " +
				"single server but unsafe for multi-server deployments relying on " +
				"automatic consumer IDs.",
		},
		KeyDef{
			Name:       ConsumerMaxThreadsConfig,
			Type:       TypeInt,
			Default:    50,
			Importance: ImportanceMedium,
			Doc: "Maximum number of workers handling consumer requests. " +
				"-1 denotes unbounded.",
		},
		KeyDef{
			Name:       ZookeeperConnectConfig,
			Type:       TypeString,
			Default:    "",
			Importance: ImportanceHigh,
			Doc: "ZooKeeper connection string in host:port form, with multiple hosts " +
				"comma-separated and an optional chroot path suffix. Only required by the " +
				"v1 consumer API.",
		},
		KeyDef{
			Name:       SchemaRegistryURLConfig,
			Type:       TypeString,
			Default:    "http://localhost:8081",
			Importance: ImportanceHigh,
			Doc:        "Base URL of the schema registry used by the Avro decoder.",
		},
		KeyDef{
			Name:       FetchMinBytesConfig,
			Type:       TypeInt,
			Default:    -1,
			Importance: ImportanceLow,
			Validator:  FetchMinBytesRange,
			Doc: "Minimum bytes of records the proxy accumulates before answering a " +
				"consumer request. -1 disables accumulation.",
		},
		KeyDef{
			Name:       IteratorTimeoutMsConfig,
			Type:       TypeInt,
			Default:    1,
			Importance: ImportanceLow,
			Doc: "Timeout for blocking consumer iterator operations. Keep small enough " +
				"that the iterator can effectively be peeked.",
		},
		KeyDef{
			Name:       IteratorBackoffMsConfig,
			Type:       TypeInt,
			Default:    50,
			Importance: ImportanceLow,
			Doc: "Backoff when an iterator runs out of data. With a dedicated worker per " +
				"consumer this is effectively the maximum error on the request timeout, " +
				"so it should closely target the timeout without busy waiting.",
		},
		KeyDef{
			Name:       RequestTimeoutMsConfig,
			Type:       TypeInt,
			Default:    1000,
			Importance: ImportanceMedium,
			Doc: "Maximum total time to wait for messages for a request when the " +
				"maximum message count has not been reached yet.",
		},
		KeyDef{
			Name:       RequestMaxBytesConfig,
			Type:       TypeLong,
			Default:    int64(64 * 1024 * 1024),
			Importance: ImportanceMedium,
			Doc: "Maximum number of unencoded key and value bytes returned by a single " +
				"request. The payload on the wire is larger due to base64 and JSON " +
				"encoding overhead.",
		},
		KeyDef{
			Name:       InstanceTimeoutMsConfig,
			Type:       TypeInt,
			Default:    300000,
			Importance: ImportanceLow,
			Doc:        "Idle time before a consumer instance is destroyed automatically.",
		},
		KeyDef{
			Name:       PoolSizeMaxConfig,
			Type:       TypeInt,
			Default:    25,
			Importance: ImportanceMedium,
			Doc: "Maximum number of SimpleConsumers instantiated per broker. " +
				"0 leaves the pool unbounded.",
		},
		KeyDef{
			Name:       PoolTimeoutMsConfig,
			Type:       TypeInt,
			Default:    1000,
			Importance: ImportanceLow,
			Doc: "Time to wait for an available SimpleConsumer from the pool before " +
				"failing. Use 0 for no timeout.",
		},
		KeyDef{
			Name:       ZKSessionTimeoutMsConfig,
			Type:       TypeInt,
			Default:    30000,
			Importance: ImportanceLow,
			Validator:  AtLeast(0),
			Doc:        "ZooKeeper session timeout for the embedded client.",
		},
	)
}

// ClientSettings is the surface the embedded consumer client config
// presents to the proxy: five numeric settings it derives with its own
// defaulting and validation rules.
type ClientSettings interface {
	SocketTimeoutMs() int
	SocketReceiveBufferBytes() int
	FetchMessageMaxBytes() int
	FetchWaitMaxMs() int
	FetchMinBytes() int
}

// ClientFactory builds the embedded client settings from a property map.
// A non-nil error fails proxy configuration construction as a whole.
type ClientFactory func(props map[string]string) (ClientSettings, error)

// ProxyConfig is the resolved, immutable configuration of one proxy
// instance. All accessors are pure reads and safe for concurrent use.
type ProxyConfig struct {
	snapshot *Snapshot
	clk      clock.Clock
	client   ClientSettings
}

// NewProxyConfig resolves props against [ProxySchema] and derives the
// embedded client settings via newClient.
//
// The client is built from a clone of props in which zookeeper.connect
// and group.id are force-set to the empty string: the client's schema
// requires both, but neither has any meaning for the single-partition
// consumer path, so caller-supplied values must not leak through. The
// original map is kept untouched and is returned by OriginalProperties.
func NewProxyConfig(props map[string]string, clk clock.Clock, newClient ClientFactory) (*ProxyConfig, error) {
	return NewProxyConfigWithSchema(ProxySchema(), props, clk, newClient)
}

// NewProxyConfigWithSchema is NewProxyConfig against a caller-supplied
// schema, for services that extend the proxy schema further.
func NewProxyConfigWithSchema(schema *Schema, props map[string]string, clk clock.Clock, newClient ClientFactory) (*ProxyConfig, error) {
	snapshot, err := Resolve(schema, props)
	if err != nil {
		return nil, err
	}

	overrides := maps.Clone(props)
	if overrides == nil {
		overrides = make(map[string]string, 2)
	}
	overrides[ZookeeperConnectConfig] = ""
	overrides[GroupIDConfig] = ""

	client, err := newClient(overrides)
	if err != nil {
		return nil, fmt.Errorf("deriving consumer client configuration: %w", err)
	}

	return &ProxyConfig{snapshot: snapshot, clk: clk, client: client}, nil
}

func (c *ProxyConfig) ID() string { return c.snapshot.String(IDConfig) }

func (c *ProxyConfig) ConsumerMaxThreads() int { return c.snapshot.Int(ConsumerMaxThreadsConfig) }

func (c *ProxyConfig) ZookeeperConnect() string { return c.snapshot.String(ZookeeperConnectConfig) }

func (c *ProxyConfig) SchemaRegistryURL() string { return c.snapshot.String(SchemaRegistryURLConfig) }

func (c *ProxyConfig) ProxyFetchMinBytes() int { return c.snapshot.Int(FetchMinBytesConfig) }

func (c *ProxyConfig) IteratorTimeoutMs() int { return c.snapshot.Int(IteratorTimeoutMsConfig) }

func (c *ProxyConfig) IteratorBackoffMs() int { return c.snapshot.Int(IteratorBackoffMsConfig) }

func (c *ProxyConfig) RequestTimeoutMs() int { return c.snapshot.Int(RequestTimeoutMsConfig) }

func (c *ProxyConfig) RequestMaxBytes() int64 { return c.snapshot.Long(RequestMaxBytesConfig) }

func (c *ProxyConfig) InstanceTimeoutMs() int { return c.snapshot.Int(InstanceTimeoutMsConfig) }

func (c *ProxyConfig) PoolSizeMax() int { return c.snapshot.Int(PoolSizeMaxConfig) }

func (c *ProxyConfig) PoolTimeoutMs() int { return c.snapshot.Int(PoolTimeoutMsConfig) }

func (c *ProxyConfig) ZKSessionTimeoutMs() int { return c.snapshot.Int(ZKSessionTimeoutMsConfig) }

func (c *ProxyConfig) Listener() string { return c.snapshot.String(ListenerConfig) }

func (c *ProxyConfig) ShutdownGraceMs() int { return c.snapshot.Int(ShutdownGraceMsConfig) }

func (c *ProxyConfig) RequestLoggingEnabled() bool { return c.snapshot.Bool(RequestLoggingConfig) }

// Derived accessors, read through to the embedded client settings.

func (c *ProxyConfig) SocketTimeoutMs() int { return c.client.SocketTimeoutMs() }

func (c *ProxyConfig) SocketReceiveBufferBytes() int { return c.client.SocketReceiveBufferBytes() }

func (c *ProxyConfig) FetchMessageMaxBytes() int { return c.client.FetchMessageMaxBytes() }

func (c *ProxyConfig) FetchWaitMaxMs() int { return c.client.FetchWaitMaxMs() }

func (c *ProxyConfig) FetchMinBytes() int { return c.client.FetchMinBytes() }

// Clock returns the time source the proxy was constructed with.
// Configuration itself is time-independent; downstream components
// (instance eviction, pool waits) use the clock so tests can drive time
// deterministically.
func (c *ProxyConfig) Clock() clock.Clock {
	return c.clk
}

// OriginalProperties returns the raw property map exactly as supplied,
// including any values for the keys the override view neutralizes.
// Callers must treat the map as read-only.
func (c *ProxyConfig) OriginalProperties() map[string]string {
	return c.snapshot.Raw()
}
