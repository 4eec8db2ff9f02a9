// Package rasp implements the station catalog and schedule ports against the
// Yandex Rasp (timetables) HTTP API.
package rasp

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

// Ensure Client implements both upstream ports.
var (
	_ driven.StationCatalog  = (*Client)(nil)
	_ driven.ScheduleService = (*Client)(nil)
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.rasp.yandex.net/v3.0"

	// DefaultTimeout covers the stations_list download, which is tens of
	// megabytes on a slow link.
	DefaultTimeout = 60 * time.Second

	// maxSegments caps how many departures a schedule search returns.
	maxSegments = 10
)

// Client talks to the Rasp API. It implements both the station catalog and
// the schedule search.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *RateLimiter
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

// NewClient creates a Rasp API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		rateLimiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// stationsListResponse mirrors the /stations_list/ hierarchy: countries
// contain regions, regions contain settlements, settlements contain stations.
type stationsListResponse struct {
	Countries []struct {
		Title   string `json:"title"`
		Regions []struct {
			Title       string `json:"title"`
			Settlements []struct {
				Title    string `json:"title"`
				Stations []struct {
					Title         string  `json:"title"`
					TransportType string  `json:"transport_type"`
					Latitude      float64 `json:"latitude"`
					Longitude     float64 `json:"longitude"`
					Codes         struct {
						YandexCode string `json:"yandex_code"`
						IATA       string `json:"iata"`
					} `json:"codes"`
				} `json:"stations"`
			} `json:"settlements"`
		} `json:"regions"`
	} `json:"countries"`
}

// FetchAirports downloads the full station catalog and flattens it to air
// stations with a usable code. Everything else in the feed is skipped.
func (c *Client) FetchAirports(ctx context.Context) ([]domain.Airport, error) {
	logger.Info("Fetching station catalog from %s", c.baseURL)

	body, err := c.get(ctx, "/stations_list/", url.Values{})
	if err != nil {
		return nil, err
	}

	var payload stationsListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode stations list: %v", domain.ErrRemoteFetchFailed, err)
	}

	var airports []domain.Airport
	for _, country := range payload.Countries {
		for _, region := range country.Regions {
			for _, settlement := range region.Settlements {
				for _, station := range settlement.Stations {
					// The feed labels air stations either way depending on lang.
					if station.TransportType != "plane" && station.TransportType != "Самолёт" {
						continue
					}
					if station.Codes.YandexCode == "" {
						continue
					}

					aliases := []string{settlement.Title}
					if station.Title != settlement.Title {
						aliases = append(aliases, station.Title, settlement.Title+" "+station.Title)
					}
					if station.Codes.IATA != "" {
						aliases = append(aliases, station.Codes.IATA)
					}

					airports = append(airports, domain.Airport{
						Code:       station.Codes.YandexCode,
						Title:      station.Title,
						Settlement: settlement.Title,
						Region:     region.Title,
						Country:    country.Title,
						Latitude:   station.Latitude,
						Longitude:  station.Longitude,
						Aliases:    aliases,
					})
				}
			}
		}
	}

	logger.Info("Catalog fetch complete: %d air stations", len(airports))
	return airports, nil
}

// searchResponse mirrors the relevant part of a /search/ reply.
type searchResponse struct {
	Segments []struct {
		Departure string  `json:"departure"`
		Arrival   string  `json:"arrival"`
		Duration  float64 `json:"duration"`
		Thread    struct {
			Number        string `json:"number"`
			Title         string `json:"title"`
			TransportType string `json:"transport_type"`
			Carrier       struct {
				Title string `json:"title"`
			} `json:"carrier"`
		} `json:"thread"`
	} `json:"segments"`
}

// SearchSchedule queries the point-to-point timetable for one day.
func (c *Client) SearchSchedule(ctx context.Context, q driven.ScheduleQuery) ([]driven.FlightSegment, error) {
	params := url.Values{
		"from": {q.From},
		"to":   {q.To},
		"date": {q.Date.Format(domain.DateLayout)},
	}
	transport := q.TransportType
	if transport == "" {
		transport = "plane"
	}
	params.Set("transport_types", transport)

	body, err := c.get(ctx, "/search/", params)
	if err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", domain.ErrRemoteFetchFailed, err)
	}

	segments := payload.Segments
	if len(segments) > maxSegments {
		segments = segments[:maxSegments]
	}

	result := make([]driven.FlightSegment, 0, len(segments))
	for _, seg := range segments {
		result = append(result, driven.FlightSegment{
			Carrier:       seg.Thread.Carrier.Title,
			Number:        seg.Thread.Number,
			Title:         seg.Thread.Title,
			TransportType: seg.Thread.TransportType,
			Departure:     seg.Departure,
			Arrival:       seg.Arrival,
			DurationSec:   int(seg.Duration),
		})
	}
	return result, nil
}

// get performs a rate-limited GET against the API with the standard
// parameters attached.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("rasp API key: %w", domain.ErrNotConfigured)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("apikey", c.apiKey)
	params.Set("format", "json")
	params.Set("lang", "ru_RU")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.rateLimiter.RecordRateLimitError(retryAfter)
		return nil, fmt.Errorf("%w: rate limited (HTTP 429)", domain.ErrRemoteFetchFailed)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", domain.ErrRemoteFetchFailed, resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrRemoteFetchFailed, err)
	}
	return body, nil
}
