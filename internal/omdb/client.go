// Package omdb is a thin pass-through client for the OMDb movie API.
// Upstream JSON is returned verbatim; nothing is cached.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "http://www.omdbapi.com/"
	DefaultTimeout = 10 * time.Second

	// probeID is the title fetched by TestConnection.
	probeID = "tt3896198"

	maxBodySize = 4 << 20
)

var ErrMissingQuery = errors.New("omdb: title or id required")

// NotFoundError is returned by Details when OMDb answers Response=False.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "omdb: not found: " + e.Message
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("omdb: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("omdb: base url %q must be absolute", cfg.BaseURL)
	}
	return &Client{
		baseURL: u,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// DetailsQuery selects a movie by title or IMDb id. Title wins when both are set.
type DetailsQuery struct {
	Title string
	ID    string
}

// TestConnection fetches a fixed title to check that the API key works.
func (c *Client) TestConnection(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, url.Values{"i": {probeID}})
}

// Search relays an OMDb title search.
func (c *Client) Search(ctx context.Context, term string) (json.RawMessage, error) {
	return c.get(ctx, url.Values{"s": {term}})
}

// Details relays a single movie lookup, translating Response=False into
// a *NotFoundError.
func (c *Client) Details(ctx context.Context, q DetailsQuery) (json.RawMessage, error) {
	params := url.Values{}
	switch {
	case q.Title != "":
		params.Set("t", q.Title)
	case q.ID != "":
		params.Set("i", q.ID)
	default:
		return nil, ErrMissingQuery
	}

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var env struct {
		Response string `json:"Response"`
		Error    string `json:"Error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("omdb: decode response: %w", err)
	}
	if env.Response != "True" {
		msg := env.Error
		if msg == "" {
			msg = "Film tidak ditemukan di OMDb."
		}
		return nil, &NotFoundError{Message: msg}
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (json.RawMessage, error) {
	u := *c.baseURL
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("omdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("omdb: read body: %w", err)
	}
	// OMDb reports most failures as JSON with Response=False, so any JSON body
	// is relayed regardless of the status code.
	if !json.Valid(body) {
		return nil, fmt.Errorf("omdb: upstream returned non-JSON body (status %d)", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
