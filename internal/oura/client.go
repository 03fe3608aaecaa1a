// Package oura fetches daily wellness metrics from the Oura v2 REST API and
// normalizes them into metric rows.
package oura

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

	"github.com/alexanderramin/vitals/internal/domain"
)

// DefaultEndpoint is the Oura v2 user collection base URL.
const DefaultEndpoint = "https://api.ouraring.com/v2/usercollection"

var (
	// ErrMissingToken is returned when no personal access token is configured.
	ErrMissingToken = errors.New("oura access token not configured")

	// ErrUnauthorized is returned when Oura rejects the token.
	ErrUnauthorized = errors.New("oura rejected the access token")
)

// StatusError is a non-2xx reply other than 401.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("oura %s returned status %d: %s", e.Path, e.Code, e.Body)
}

// Config holds connection settings for the Oura API.
type Config struct {
	Token    string
	Endpoint string
	Timeout  time.Duration
}

// Client reads daily documents from the Oura API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client. Empty endpoint and zero timeout fall back to
// DefaultEndpoint and 30 seconds.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// page is one paginated collection response.
type page[T any] struct {
	Data      []T     `json:"data"`
	NextToken *string `json:"next_token"`
}

// fetchAll walks every page of path within [start, end].
func fetchAll[T any](ctx context.Context, c *Client, path string, start, end time.Time) ([]T, error) {
	if strings.TrimSpace(c.cfg.Token) == "" {
		return nil, ErrMissingToken
	}

	params := url.Values{}
	params.Set("start_date", start.Format(domain.DayLayout))
	params.Set("end_date", end.Format(domain.DayLayout))

	var out []T
	for {
		var p page[T]
		if err := c.get(ctx, path, params, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Data...)
		if p.NextToken == nil || *p.NextToken == "" {
			return out, nil
		}
		params.Set("next_token", *p.NextToken)
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.cfg.Endpoint + "/" + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating oura request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling oura %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading oura %s: %w", path, err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding oura %s: %w", path, err)
	}
	return nil
}
