// Package pokeapi is a small client for the public PokeAPI REST service.
//
// Every failure is reported as a *pokemon.FetchError so callers can branch on
// pokemon.ErrNetwork, pokemon.ErrDecoding and pokemon.ErrInvalidResponse.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokemon"
)

const (
	// DefaultBaseURL is the public PokeAPI endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	// DefaultTimeout bounds one HTTP round trip.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent identifies the client to the upstream.
	DefaultUserAgent = "pokedex-cli"

	// maxErrorBody caps how much of a failed response is kept for the error text.
	maxErrorBody = 512
)

// Client calls PokeAPI over HTTP.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client

	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.BaseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTPClient = h }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// WithTimeout bounds each round trip. It applies to a copy of the http.Client,
// so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient returns a client with defaults applied before opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		UserAgent:  DefaultUserAgent,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout > 0 {
		hc := *c.HTTPClient
		hc.Timeout = c.timeout
		c.HTTPClient = &hc
	}
	return c
}

// ListPokemon fetches one page of the unfiltered resource list.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*ListResponse, error) {
	const op = "list pokemon"
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out ListResponse
	if err := c.getJSON(ctx, op, "/pokemon?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPokemon fetches the detail record for a name or numeric ID.
func (c *Client) GetPokemon(ctx context.Context, nameOrID string) (*DetailResponse, error) {
	const op = "get pokemon"
	var out DetailResponse
	if err := c.getJSON(ctx, op, "/pokemon/"+url.PathEscape(nameOrID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "pokeapi").With().Str("op", op).Logger()
	endpoint := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pokemon.NewFetchError(pokemon.ErrInvalidResponse, op, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Str("url", endpoint).Msg("request failed")
		return pokemon.NewFetchError(pokemon.ErrNetwork, op, err)
	}
	defer resp.Body.Close()

	logResponse(ctx, &log, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return pokemon.NewFetchError(pokemon.ErrNetwork, op, fmt.Errorf("%w: %s", pokemon.ErrNotFound, path))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return pokemon.NewFetchError(pokemon.ErrNetwork, op,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pokemon.NewFetchError(pokemon.ErrDecoding, op, err)
	}
	return nil
}

func logResponse(ctx context.Context, log *zerolog.Logger, endpoint string, status int, elapsed time.Duration) {
	log.Debug().
		Ctx(ctx).
		Str("url", endpoint).
		Int("status", status).
		Dur("elapsed", elapsed).
		Msg("response received")
}
