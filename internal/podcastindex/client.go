package podcastindex

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"podscribe/internal/config"
	"podscribe/internal/services"
)

const userAgent = "podscribe/0.1.0"

// HTTPDoer describes the HTTP client used by the directory client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Podcast Index API.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    HTTPDoer
	now       func() time.Time
}

// NewClient builds a directory client from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "search", "client", "configuration is required", nil)
	}
	key := strings.TrimSpace(cfg.PodcastIndex.APIKey)
	secret := strings.TrimSpace(cfg.PodcastIndex.APISecret)
	if key == "" || secret == "" {
		return nil, services.Wrap(services.ErrConfiguration, "search", "client",
			"podcast_index.api_key and api_secret are required (set PODCAST_INDEX_API_KEY / PODCAST_INDEX_API_SECRET)", nil)
	}
	timeout := time.Duration(cfg.PodcastIndex.RequestTimeout) * time.Second
	return &Client{
		baseURL:   cfg.PodcastIndex.BaseURL,
		apiKey:    key,
		apiSecret: secret,
		client:    &http.Client{Timeout: timeout},
		now:       time.Now,
	}, nil
}

// NewClientWithDoer constructs a client against a caller-supplied HTTP doer.
// Used by tests and callers that need custom transport behavior.
func NewClientWithDoer(baseURL, apiKey, apiSecret string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:    strings.TrimSpace(apiKey),
		apiSecret: strings.TrimSpace(apiSecret),
		client:    doer,
		now:       time.Now,
	}
}

// SearchByTerm queries /search/byterm and returns matching shows in API
// ranking order. An empty result set is not an error.
func (c *Client) SearchByTerm(ctx context.Context, term string) ([]Podcast, error) {
	params := url.Values{"q": []string{term}}
	var payload searchResponse
	if err := c.get(ctx, "/search/byterm", params, &payload); err != nil {
		return nil, err
	}
	return payload.Feeds, nil
}

// EpisodesByFeed queries /episodes/byfeedid for the most recent episodes of a
// show. Max bounds the number of items requested (0 uses the API default).
func (c *Client) EpisodesByFeed(ctx context.Context, feedID int64, max int) ([]Episode, error) {
	params := url.Values{"id": []string{strconv.FormatInt(feedID, 10)}}
	if max > 0 {
		params.Set("max", strconv.Itoa(max))
	}
	var payload episodesResponse
	if err := c.get(ctx, "/episodes/byfeedid", params, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.Wrap(services.ErrSearch, "search", "build request", endpoint, err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrSearch, "search", "request", "podcast index unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrSearch, "search", "request",
			fmt.Sprintf("podcast index returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrSearch, "search", "decode response", "invalid JSON from podcast index", err)
	}
	return nil
}

// authorize sets the Podcast Index auth headers: the Authorization value is
// the hex SHA1 of key+secret+date, where date is the unix-seconds value sent
// in X-Auth-Date.
func (c *Client) authorize(req *http.Request) {
	authDate := strconv.FormatInt(c.now().Unix(), 10)
	sum := sha1.Sum([]byte(c.apiKey + c.apiSecret + authDate))

	req.Header.Set("X-Auth-Date", authDate)
	req.Header.Set("X-Auth-Key", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("%x", sum))
	req.Header.Set("User-Agent", userAgent)
}
