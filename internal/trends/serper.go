// Package trends probes the Serper search API for related questions
// around an article's headline. The probe is strictly best-effort: every
// failure path returns the NoTrendData sentinel instead of an error.
package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// NoTrendData is returned whenever no trend context is available, either
// because the probe was skipped or because it failed.
const NoTrendData = "No trending questions found."

// defaultBaseURL is the Serper search endpoint.
const defaultBaseURL = "https://google.serper.dev/search"

// maxQuestions bounds the number of related questions included in the
// formatted trend text.
const maxQuestions = 8

// Prober issues trend probes for the pipeline.
type Prober interface {
	Probe(ctx context.Context, query string) string
}

// Client is a thin Serper API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Serper client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	Q string `json:"q"`
}

type searchResponse struct {
	PeopleAlsoAsk []struct {
		Question string `json:"question"`
	} `json:"peopleAlsoAsk"`
}

// Probe searches for the query and formats the "people also ask"
// questions as a bulleted list. An empty query skips the probe entirely;
// any failure is logged and replaced with the NoTrendData sentinel so
// the pipeline always continues.
func (c *Client) Probe(ctx context.Context, query string) string {
	if strings.TrimSpace(query) == "" {
		return NoTrendData
	}

	questions, err := c.search(ctx, query)
	if err != nil {
		log.Printf("[trends] probe failed, skipping trend analysis: %v", err)
		return NoTrendData
	}
	if len(questions) == 0 {
		return NoTrendData
	}

	var sb strings.Builder
	sb.WriteString("Trending questions people are asking:")
	for _, q := range questions {
		sb.WriteString("\n- ")
		sb.WriteString(q)
	}
	return sb.String()
}

func (c *Client) search(ctx context.Context, query string) ([]string, error) {
	body, err := json.Marshal(searchRequest{Q: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search HTTP status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	questions := make([]string, 0, len(parsed.PeopleAlsoAsk))
	for _, entry := range parsed.PeopleAlsoAsk {
		if entry.Question == "" {
			continue
		}
		questions = append(questions, entry.Question)
		if len(questions) == maxQuestions {
			break
		}
	}
	return questions, nil
}
