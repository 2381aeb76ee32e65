// Package ids generates identifiers for consumer instances and requests.
package ids

import "github.com/google/uuid"

// Generator produces unique identifiers, optionally namespaced by the
// configured server instance id so consumers created on different proxy
// instances cannot collide.
type Generator struct {
	prefix string
}

// NewGenerator returns a Generator. prefix is the resolved `id`
// configuration value; empty means no namespace.
func NewGenerator(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next returns a fresh identifier. UUIDv7 keeps ids sortable by creation
// time; on the rare construction failure it falls back to v4.
func (g *Generator) Next() string {
	id := ""
	if v7, err := uuid.NewV7(); err == nil {
		id = v7.String()
	} else {
		id = uuid.NewString()
	}

	if g.prefix == "" {
		return id
	}

	return g.prefix + "-" + id
}
