// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package kafka holds the pieces of the legacy consumer client the proxy
// still depends on. The client configuration keeps its own schema with
// its own defaults and validation, independent of the proxy schema; the
// proxy consumes it strictly through the getters it exposes.
package kafka

import (
	"fmt"

	"github.com/MKhiriev/go-kafka-rest/internal/config"
)

// Names of the client configuration keys.
//
// The schema was written for the high-level (group-managed) consumer, so
// group.id and zookeeper.connect are required even though the
// single-partition path has no use for them. Callers that only need the
// derived socket and fetch settings must still supply both, which is why
// the proxy presents the client with an override view rather than its raw
// properties.
const (
	GroupIDConfig                  = "group.id"
	ZookeeperConnectConfig         = "zookeeper.connect"
	SocketTimeoutMsConfig          = "socket.timeout.ms"
	SocketReceiveBufferBytesConfig = "socket.receive.buffer.bytes"
	FetchMessageMaxBytesConfig     = "fetch.message.max.bytes"
	FetchWaitMaxMsConfig           = "fetch.wait.max.ms"
	FetchMinBytesConfig            = "fetch.min.bytes"
)

// ClientSchema returns the consumer client's own configuration schema.
func ClientSchema() *config.Schema {
	return config.NewSchema().
		Define(config.KeyDef{
			Name:       GroupIDConfig,
			Type:       config.TypeString,
			Default:    config.Required,
			Importance: config.ImportanceHigh,
			Doc:        "Consumer group this client belongs to.",
		}).
		Define(config.KeyDef{
			Name:       ZookeeperConnectConfig,
			Type:       config.TypeString,
			Default:    config.Required,
			Importance: config.ImportanceHigh,
			Doc:        "ZooKeeper connection string for group coordination.",
		}).
		Define(config.KeyDef{
			Name:       SocketTimeoutMsConfig,
			Type:       config.TypeInt,
			Default:    30000,
			Importance: config.ImportanceLow,
			Doc:        "Socket timeout for broker requests.",
		}).
		Define(config.KeyDef{
			Name:       SocketReceiveBufferBytesConfig,
			Type:       config.TypeInt,
			Default:    64 * 1024,
			Importance: config.ImportanceLow,
			Doc:        "Socket receive buffer for broker connections.",
		}).
		Define(config.KeyDef{
			Name:       FetchMessageMaxBytesConfig,
			Type:       config.TypeInt,
			Default:    1024 * 1024,
			Importance: config.ImportanceMedium,
			Doc:        "Maximum bytes fetched per topic-partition in one request.",
		}).
		Define(config.KeyDef{
			Name:       FetchWaitMaxMsConfig,
			Type:       config.TypeInt,
			Default:    100,
			Importance: config.ImportanceLow,
			Doc: "Maximum time the broker may block a fetch when fewer than " +
				"fetch.min.bytes of data are available.",
		}).
		Define(config.KeyDef{
			Name:       FetchMinBytesConfig,
			Type:       config.TypeInt,
			Default:    1,
			Importance: config.ImportanceLow,
			Validator:  config.FetchMinBytesRange,
			Doc:        "Minimum bytes the broker accumulates before answering a fetch.",
		})
}

// ClientConfig is the validated consumer client configuration. Immutable
// after construction.
type ClientConfig struct {
	snapshot *config.Snapshot
}

// NewClientConfig validates props against [ClientSchema].
func NewClientConfig(props map[string]string) (*ClientConfig, error) {
	snapshot, err := config.Resolve(ClientSchema(), props)
	if err != nil {
		return nil, fmt.Errorf("consumer client configuration: %w", err)
	}

	return &ClientConfig{snapshot: snapshot}, nil
}

// Settings adapts NewClientConfig to the factory shape the proxy
// configuration consumes.
func Settings(props map[string]string) (config.ClientSettings, error) {
	return NewClientConfig(props)
}

func (c *ClientConfig) GroupID() string          { return c.snapshot.String(GroupIDConfig) }
func (c *ClientConfig) ZookeeperConnect() string { return c.snapshot.String(ZookeeperConnectConfig) }

func (c *ClientConfig) SocketTimeoutMs() int { return c.snapshot.Int(SocketTimeoutMsConfig) }
func (c *ClientConfig) SocketReceiveBufferBytes() int {
	return c.snapshot.Int(SocketReceiveBufferBytesConfig)
}
func (c *ClientConfig) FetchMessageMaxBytes() int { return c.snapshot.Int(FetchMessageMaxBytesConfig) }
func (c *ClientConfig) FetchWaitMaxMs() int       { return c.snapshot.Int(FetchWaitMaxMsConfig) }
func (c *ClientConfig) FetchMinBytes() int        { return c.snapshot.Int(FetchMinBytesConfig) }
