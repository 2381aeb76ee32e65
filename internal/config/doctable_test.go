package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDocTable_ListsEveryKey verifies that each proxy schema key appears
// with its documentation.
func TestDocTable_ListsEveryKey(t *testing.T) {
	table := DocTable(ProxySchema())

	for _, def := range ProxySchema().Keys() {
		assert.Contains(t, table, "| "+def.Name+" |", "key %q missing from table", def.Name)
	}
	assert.Contains(t, table, "schema registry")
}

// TestDocTable_RendersDefaultsAndRequired verifies default formatting:
// strings quoted, numbers plain, required marked.
func TestDocTable_RendersDefaultsAndRequired(t *testing.T) {
	schema := NewSchema().
		Define(KeyDef{Name: "url", Type: TypeString, Default: "http://x", Importance: ImportanceHigh, Doc: "d"}).
		Define(KeyDef{Name: "n", Type: TypeInt, Default: 7, Importance: ImportanceLow, Doc: "d"}).
		Define(KeyDef{Name: "must", Type: TypeString, Default: Required, Importance: ImportanceHigh, Doc: "d"})

	table := DocTable(schema)

	assert.Contains(t, table, `"http://x"`)
	assert.Contains(t, table, "| 7 |")
	assert.Contains(t, table, "(required)")

	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.Len(t, lines, 5) // header + separator + three keys
}
