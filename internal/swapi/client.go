// Package swapi is a small client for the Star Wars API (https://swapi.dev).
//
// It fetches characters by identifier and films, starships and vehicles by the
// absolute URLs a character links to. Responses can be cached on disk by URL.
package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/holocron/internal/cache"
)

// DefaultBaseURL is the public SWAPI endpoint.
const DefaultBaseURL = "https://swapi.dev/api"

// ImageBaseURL serves character portraits keyed by the same identifier.
const ImageBaseURL = "https://starwars-visualguide.com/assets/img/characters"

// maxBodyBytes caps how much of a response is read. SWAPI records are a few KB.
const maxBodyBytes = 1 << 20

// ResponseCache is the subset of cache.FileStore the client uses.
type ResponseCache interface {
	IsEnabled() bool
	Get(key string) (*cache.Entry, error)
	Set(key, url string, data json.RawMessage) error
	Delete(key string) error
}

// Client fetches SWAPI records.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      ResponseCache
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different SWAPI deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCache enables response caching.
func WithCache(rc ResponseCache) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a client for DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: NewHTTPClient(DefaultHTTPOptions()),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ValidateID checks that id is a positive integer and returns it trimmed.
func ValidateID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return strconv.Itoa(n), nil
}

// CharacterURL returns the resource URL for a character identifier.
func (c *Client) CharacterURL(id string) string {
	return fmt.Sprintf("%s/people/%s/", c.baseURL, id)
}

// ImageURL returns the portrait URL for a character identifier. The image is not
// checked for existence.
func ImageURL(id string) string {
	return fmt.Sprintf("%s/%s.jpg", ImageBaseURL, id)
}

// GetCharacter fetches the character with the given identifier.
func (c *Client) GetCharacter(ctx context.Context, id string) (*Character, error) {
	validID, err := ValidateID(id)
	if err != nil {
		return nil, err
	}
	return getJSON[Character](ctx, c, c.CharacterURL(validID))
}

// GetFilm fetches a film by its absolute URL.
func (c *Client) GetFilm(ctx context.Context, url string) (*Film, error) {
	return getJSON[Film](ctx, c, url)
}

// GetStarship fetches a starship by its absolute URL.
func (c *Client) GetStarship(ctx context.Context, url string) (*Starship, error) {
	return getJSON[Starship](ctx, c, url)
}

// GetVehicle fetches a vehicle by its absolute URL.
func (c *Client) GetVehicle(ctx context.Context, url string) (*Vehicle, error) {
	return getJSON[Vehicle](ctx, c, url)
}

// getJSON fetches url and decodes the body into T, consulting the cache first.
func getJSON[T any](ctx context.Context, c *Client, url string) (*T, error) {
	if body, ok := c.cached(url); ok {
		var out T
		if err := json.Unmarshal(body, &out); err == nil {
			return &out, nil
		}
		// A corrupt entry falls through to a network fetch and is overwritten.
	}

	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}

	c.store(url, body)
	return &out, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}
	if !json.Valid(body) {
		return nil, ErrDecode
	}
	return body, nil
}

// errorDetail extracts SWAPI's {"detail": "..."} message when present.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

func (c *Client) cached(url string) ([]byte, bool) {
	if c.cache == nil || !c.cache.IsEnabled() {
		return nil, false
	}
	key := cache.KeyForURL(url)
	entry, err := c.cache.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrExpired) {
			// Unreadable entries are dropped so they are not re-read on every miss.
			c.logger.Warn().Err(err).Str("url", url).Msg("cache read failed, discarding entry")
			if delErr := c.cache.Delete(key); delErr != nil {
				c.logger.Warn().Err(delErr).Str("url", url).Msg("cache delete failed")
			}
		}
		return nil, false
	}
	c.logger.Debug().Str("url", url).Msg("cache hit")
	return entry.Data, true
}

func (c *Client) store(url string, body []byte) {
	if c.cache == nil || !c.cache.IsEnabled() {
		return
	}
	if err := c.cache.Set(cache.KeyForURL(url), url, json.RawMessage(body)); err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("cache write failed")
	}
}
