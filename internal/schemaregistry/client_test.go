package schemaregistry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubjects verifies subject listing against a fake registry.
func TestSubjects(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subjects", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.schemaregistry.v1+json")
		_, _ = w.Write([]byte(`["orders-value","orders-key"]`))
	}))
	defer registry.Close()

	subjects, err := NewClient(registry.URL, time.Second).Subjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orders-value", "orders-key"}, subjects)
}

// TestSchemaByID verifies schema retrieval by global id.
func TestSchemaByID(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schemas/ids/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.schemaregistry.v1+json")
		_, _ = w.Write([]byte(`{"schema": "\"string\""}`))
	}))
	defer registry.Close()

	schema, err := NewClient(registry.URL, time.Second).SchemaByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, `"string"`, schema)
}

// TestSchemaByID_ErrorStatus verifies that registry errors surface with
// the HTTP status instead of decoding garbage.
func TestSchemaByID_ErrorStatus(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error_code":40403,"message":"Schema not found"}`, http.StatusNotFound)
	}))
	defer registry.Close()

	_, err := NewClient(registry.URL, time.Second).SchemaByID(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// TestNewClient_TrimsTrailingSlash verifies base URL normalization.
func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subjects", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer registry.Close()

	_, err := NewClient(registry.URL+"/", time.Second).Subjects(context.Background())
	assert.NoError(t, err)
}
