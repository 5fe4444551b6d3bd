package tda_http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charleschow/tda-trading/internal/telemetry"
)

// Client talks to the TD Ameritrade REST API. It is safe for concurrent use
// and meant to be built once and reused.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	retry      RetryPolicy
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeaders sets headers sent on every request, e.g. BearerHeaders(token).
func WithHeaders(h http.Header) Option {
	return func(c *Client) { c.headers = h.Clone() }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		headers: http.Header{},
		retry:   DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// do sends one request. Per-call headers override the client defaults.
func (c *Client) do(ctx context.Context, method, path string, body any, headers http.Header) (*rawResponse, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range c.headers {
		req.Header[k] = vs
	}
	for k, vs := range headers {
		req.Header[http.CanonicalHeaderKey(k)] = vs
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	telemetry.Infof("tda_http: %s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start))

	return &rawResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

func (c *Client) post(ctx context.Context, path string, body any, headers http.Header) (*rawResponse, error) {
	return c.do(ctx, http.MethodPost, path, body, headers)
}

// BearerHeaders returns the Authorization header for an OAuth access token.
// An empty token yields no headers.
func BearerHeaders(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
