// Package client implements the ResearchSynthesis ingest client.
// The `ingest` subcommand uses it to push local files into a running
// server over the REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/researchsynth/researchsynth/internal/models"
)

// Client posts documents to a ResearchSynthesis server.
type Client struct {
	baseURL string
	source  string
	http    *http.Client
}

// New creates a Client for the given base URL, e.g. "http://127.0.0.1:8000".
func New(baseURL, source string) *Client {
	if source == "" {
		source = "cli"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		source:  source,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// IngestFile reads a local text file and posts it as a single document.
// The title defaults to the file name without its extension.
func (c *Client) IngestFile(path string) (*models.IngestResponse, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))

	req := models.IngestRequest{
		Content: string(content),
		Title:   title,
		Source:  c.source,
		Metadata: models.Metadata{
			"filename": name,
		},
	}

	var resp models.IngestResponse
	if err := c.postJSON("/ingest", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IngestBatchFile reads a JSON file holding an array of documents
// ({"content", "title", "source", "metadata"}) and posts them as one batch.
func (c *Client) IngestBatchFile(path string) (*models.BatchIngestResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var items []models.IngestRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range items {
		if items[i].Source == "" {
			items[i].Source = c.source
		}
	}

	var resp models.BatchIngestResponse
	if err := c.postJSON("/ingest/batch", models.BatchIngestRequest{Documents: items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health fetches the server health document; used to verify connectivity
// before a batch run.
func (c *Client) Health() (*models.HealthResponse, error) {
	resp, err := c.http.Get(c.baseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check: server returned %d", resp.StatusCode)
	}
	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("health check: decoding response: %w", err)
	}
	return &health, nil
}

func (c *Client) postJSON(path string, payload, into any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("POST %s: server returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(into)
}
