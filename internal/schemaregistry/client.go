// Package schemaregistry is a minimal client for the schema registry the
// proxy's Avro decoder resolves writer schemas from. The base URL comes
// from the schema.registry.url configuration key.
package schemaregistry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to one schema registry instance.
type Client struct {
	http *resty.Client
}

// NewClient builds a Client for baseURL. A non-positive timeout falls
// back to 15 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/vnd.schemaregistry.v1+json")

	return &Client{http: cli}
}

// Subjects lists all registered subjects.
func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	var subjects []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&subjects).
		Get("/subjects")
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("schema registry returned %s", resp.Status())
	}

	return subjects, nil
}

type schemaResponse struct {
	Schema string `json:"schema"`
}

// SchemaByID fetches the schema registered under the given global id.
func (c *Client) SchemaByID(ctx context.Context, id int) (string, error) {
	var out schemaResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/schemas/ids/%d", id))
	if err != nil {
		return "", fmt.Errorf("fetching schema %d: %w", id, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("schema registry returned %s for schema %d", resp.Status(), id)
	}

	return out.Schema, nil
}
