// Package gateway is a thin client for the gateway control plane, used by the
// setup flow to list the providers and server-side configs an API key can
// route to. Calls are one-shot: retries and caching are the caller's concern.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the hosted gateway control plane.
const DefaultBaseURL = "https://api.portkey.ai"

const requestTimeout = 10 * time.Second

// ErrUnauthorized reports an API key the gateway rejected.
var ErrUnauthorized = errors.New("gateway: api key rejected")

// Provider is one upstream provider integration reachable through the gateway.
type Provider struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Config is one server-side routing config.
type Config struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog bundles everything the setup flow offers the user to pick from.
type Catalog struct {
	Providers []Provider
	Configs   []Config
}

// Client talks to the gateway control plane.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-default control plane, e.g. a
// self-hosted gateway or the local mock.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient builds a control-plane client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProviders returns the provider integrations visible to the API key.
func (c *Client) ListProviders(ctx context.Context) ([]Provider, error) {
	var out struct {
		Data []Provider `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/providers", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListConfigs returns the server-side configs visible to the API key.
func (c *Client) ListConfigs(ctx context.Context) ([]Config, error) {
	var out struct {
		Data []Config `json:"data"`
	}
	if err := c.getJSON(ctx, "/v1/configs", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// FetchCatalog fetches providers and configs concurrently.
func (c *Client) FetchCatalog(ctx context.Context) (Catalog, error) {
	var catalog Catalog
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		providers, err := c.ListProviders(ctx)
		catalog.Providers = providers
		return err
	})
	group.Go(func() error {
		configs, err := c.ListConfigs(ctx)
		catalog.Configs = configs
		return err
	})
	if err := group.Wait(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// ValidateKey probes the API key with the cheapest possible call.
func (c *Client) ValidateKey(ctx context.Context) error {
	var out struct {
		Data []Provider `json:"data"`
	}
	return c.getJSON(ctx, "/v1/providers", url.Values{"limit": {"1"}}, &out)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("x-portkey-api-key", c.apiKey)
	req.Header.Set("x-request-id", requestID)
	req.Header.Set("accept", "application/json")

	log.WithFields(log.Fields{"path": path, "request_id": requestID}).Debug("gateway request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (%s)", ErrUnauthorized, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gateway %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
