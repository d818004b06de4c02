// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scraper is the client for the external paper scraping service.
// It fetches candidate papers for a query; the analysis pipeline only ever
// sees the returned PaperSet.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/research-genie/internal/httputil"
	"github.com/pdiddy/research-genie/internal/logging"
	"github.com/pdiddy/research-genie/pkg/types"
)

const (
	DefaultURL     = "http://localhost:8002"
	DefaultTimeout = 30 * time.Second

	healthTimeout = 5 * time.Second

	// maxErrorBody bounds how much of a failed response is quoted in errors.
	maxErrorBody = 512
)

// Client talks to the scraping service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	retry      httputil.Policy
	log        *logging.Logger
}

// New builds a Client from cfg, applying defaults for empty fields.
func New(cfg types.ScraperConfig, log *logging.Logger) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		base = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log = logging.OrNop(log).With("service", "scraper")
	return &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
		retry:      httputil.Policy{MaxRetries: cfg.MaxRetries, Log: log},
		log:        log,
	}
}

// BaseURL returns the service root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

type scrapeRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type scrapeResponse struct {
	Papers []types.Paper `json:"papers"`
}

// Search asks the service for up to maxResults papers matching query.
// A non-2xx status is an error quoting the start of the response body.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	body, err := json.Marshal(scrapeRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, fmt.Errorf("encoding scrape request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.log.Info("requesting papers", "query", query, "max_results", maxResults)
	resp, err := c.retry.Do(ctx, c.httpClient, req)
	if err != nil {
		c.log.Error("scrape request failed", "error", err)
		return nil, fmt.Errorf("scrape request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error("scrape request rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("scraper returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding scrape response: %w", err)
	}
	c.log.Info("received papers", "count", len(out.Papers))
	return out.Papers, nil
}

// Healthy reports whether GET /health answers 200. Transport failures count
// as unhealthy and are logged, not returned.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
