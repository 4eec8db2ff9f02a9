// Package yandex implements the music catalog port against the Yandex Music
// HTTP API.
package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golos-labs/golos-cli/internal/core/domain"
	"github.com/golos-labs/golos-cli/internal/core/ports/driven"
	"github.com/golos-labs/golos-cli/internal/logger"
)

var _ driven.MusicCatalog = (*Client)(nil)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.music.yandex.net"

	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 15 * time.Second

	// maxTracks caps how many results a search returns regardless of the
	// requested limit.
	maxTracks = 25
)

// Client talks to the Yandex Music search API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a Yandex Music client. The token is the account OAuth
// token; without it every search fails with ErrNotConfigured.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse mirrors the track portion of a /search reply.
type searchResponse struct {
	Result struct {
		Tracks struct {
			Results []struct {
				Title      string `json:"title"`
				DurationMs int    `json:"durationMs"`
				Artists    []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Albums []struct {
					Title string `json:"title"`
				} `json:"albums"`
			} `json:"results"`
		} `json:"tracks"`
	} `json:"result"`
}

// SearchTracks runs a track search and returns up to limit results.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if c.token == "" {
		return nil, fmt.Errorf("music API token: %w", domain.ErrNotConfigured)
	}
	if limit <= 0 || limit > maxTracks {
		limit = maxTracks
	}

	logger.Debug("Music search: %q (limit %d)", query, limit)

	params := url.Values{
		"text":      {query},
		"type":      {"track"},
		"page":      {"0"},
		"page-size": {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("music API token rejected (HTTP %d): %w", resp.StatusCode, domain.ErrNotConfigured)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from /search", domain.ErrRemoteFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrRemoteFetchFailed, err)
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", domain.ErrRemoteFetchFailed, err)
	}

	results := payload.Result.Tracks.Results
	if len(results) > limit {
		results = results[:limit]
	}

	tracks := make([]domain.Track, 0, len(results))
	for _, r := range results {
		artists := make([]string, 0, len(r.Artists))
		for _, a := range r.Artists {
			artists = append(artists, a.Name)
		}
		album := ""
		if len(r.Albums) > 0 {
			album = r.Albums[0].Title
		}
		tracks = append(tracks, domain.Track{
			Title:      r.Title,
			Artists:    artists,
			Album:      album,
			DurationMs: r.DurationMs,
		})
	}
	return tracks, nil
}
