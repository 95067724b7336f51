// Package ticketmaster pulls upcoming and past events from the
// Ticketmaster Discovery API so local shows can be loaded without
// manual entry.
package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production Discovery API endpoint.
const DefaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// The Discovery API rejects requests past the first 1000 results, so
// pagination stops before page*size crosses that line.
const maxResultDepth = 1000

// Config holds the settings for a Discovery API client.
type Config struct {
	APIKey  string
	BaseURL string

	// RequestsPerSecond throttles paginated fetches. The public API
	// quota is 5 requests per second.
	RequestsPerSecond float64

	HTTPClient *http.Client
}

// Client is a rate-limited Ticketmaster Discovery API client.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds a Client from cfg. An empty base URL falls back to
// the production endpoint.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ticketmaster: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpc:   cfg.HTTPClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		log:     log.With().Str("component", "ticketmaster").Logger(),
	}, nil
}

// EventQuery narrows an event search.
type EventQuery struct {
	StateCode      string
	Classification string
	Keyword        string
	StartDateTime  time.Time
	EndDateTime    time.Time

	// Size is the page size, capped at 200 by the API.
	Size int
}

// Event is one performance parsed out of a Discovery API response.
// ArtistName is empty when the event carries no named attraction.
type Event struct {
	Name       string
	ShowDate   time.Time
	ArtistName string
	Venue      EventVenue
}

// EventVenue is the venue block of an event.
type EventVenue struct {
	Name      string
	City      string
	State     string
	StateCode string
}

type eventsResponse struct {
	Embedded struct {
		Events []rawEvent `json:"events"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

type rawEvent struct {
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				Name      string `json:"name"`
				StateCode string `json:"stateCode"`
			} `json:"state"`
		} `json:"venues"`
		Attractions []struct {
			Name string `json:"name"`
		} `json:"attractions"`
	} `json:"_embedded"`
}

// Events fetches every page of results matching the query, in API
// order, respecting the client's rate limit.
func (c *Client) Events(ctx context.Context, query EventQuery) ([]Event, error) {
	size := query.Size
	if size <= 0 || size > 200 {
		size = 200
	}

	var events []Event
	for page := 0; ; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.fetchPage(ctx, query, size, page)
		if err != nil {
			return nil, err
		}

		for _, raw := range resp.Embedded.Events {
			ev, err := parseEvent(raw)
			if err != nil {
				c.log.Warn().Err(err).Str("event", raw.Name).Msg("skipping unparseable event")
				continue
			}
			events = append(events, ev)
		}

		c.log.Debug().
			Int("page", page).
			Int("total_pages", resp.Page.TotalPages).
			Int("fetched", len(events)).
			Msg("fetched events page")

		if page+1 >= resp.Page.TotalPages {
			break
		}
		if (page+2)*size > maxResultDepth {
			c.log.Warn().Int("fetched", len(events)).Msg("stopping at the API result depth limit")
			break
		}
	}

	return events, nil
}

func (c *Client) fetchPage(ctx context.Context, query EventQuery, size, page int) (*eventsResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("size", strconv.Itoa(size))
	params.Set("page", strconv.Itoa(page))
	if query.StateCode != "" {
		params.Set("stateCode", query.StateCode)
	}
	if query.Classification != "" {
		params.Set("classificationName", query.Classification)
	}
	if query.Keyword != "" {
		params.Set("keyword", query.Keyword)
	}
	if !query.StartDateTime.IsZero() {
		params.Set("startDateTime", query.StartDateTime.UTC().Format("2006-01-02T15:04:05Z"))
	}
	if !query.EndDateTime.IsZero() {
		params.Set("endDateTime", query.EndDateTime.UTC().Format("2006-01-02T15:04:05Z"))
	}

	reqURL := c.baseURL + "/events?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build events request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch events: unexpected status %d", resp.StatusCode)
	}

	var body eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode events response: %w", err)
	}

	return &body, nil
}

func parseEvent(raw rawEvent) (Event, error) {
	if len(raw.Embedded.Venues) == 0 {
		return Event{}, fmt.Errorf("event %q has no venue", raw.Name)
	}

	localTime := raw.Dates.Start.LocalTime
	if localTime == "" {
		localTime = "00:00:00"
	}
	showDate, err := time.Parse("2006-01-02 15:04:05", raw.Dates.Start.LocalDate+" "+localTime)
	if err != nil {
		return Event{}, fmt.Errorf("event %q has unparseable date: %w", raw.Name, err)
	}

	venue := raw.Embedded.Venues[0]

	ev := Event{
		Name:     raw.Name,
		ShowDate: showDate,
		Venue: EventVenue{
			Name:      venue.Name,
			City:      venue.City.Name,
			State:     venue.State.Name,
			StateCode: venue.State.StateCode,
		},
	}
	if len(raw.Embedded.Attractions) > 0 {
		ev.ArtistName = raw.Embedded.Attractions[0].Name
	}

	return ev, nil
}
