// Package remote is the HTTP client for the cities JSON API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jacksmith/worldwise/internal/model"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request identifier to the server.
const RequestIDHeader = "X-Request-ID"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %s", e.Method, e.URL, e.Status)
}

// Client talks to a remote "cities" resource.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the API rooted at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListCities fetches the full collection.
func (c *Client) ListCities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := c.do(ctx, http.MethodGet, "/cities", nil, &cities); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	if cities == nil {
		cities = []model.City{}
	}
	return cities, nil
}

// GetCity fetches a single city.
func (c *Client) GetCity(ctx context.Context, id model.CityID) (model.City, error) {
	var city model.City
	if err := c.do(ctx, http.MethodGet, "/cities/"+id.String(), nil, &city); err != nil {
		return model.City{}, fmt.Errorf("get city %s: %w", id, err)
	}
	return city, nil
}

// CreateCity submits a new city and returns it with its server-assigned ID.
// Any ID set on newCity is not sent.
func (c *Client) CreateCity(ctx context.Context, newCity model.City) (model.City, error) {
	newCity.ID = model.NoCity
	body, err := json.Marshal(newCity)
	if err != nil {
		return model.City{}, fmt.Errorf("encode city: %w", err)
	}

	var created model.City
	if err := c.do(ctx, http.MethodPost, "/cities", body, &created); err != nil {
		return model.City{}, fmt.Errorf("create city: %w", err)
	}
	if created.ID == model.NoCity {
		return model.City{}, fmt.Errorf("create city: response has no id")
	}
	return created, nil
}

// DeleteCity deletes a city. Success is signaled by status alone.
func (c *Client) DeleteCity(ctx context.Context, id model.CityID) error {
	if err := c.do(ctx, http.MethodDelete, "/cities/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("delete city %s: %w", id, err)
	}
	return nil
}

// do performs one JSON request. When out is nil the response body is discarded.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.String("request_id", requestID),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("url", url),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
