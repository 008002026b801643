// Package client is the typed HTTP client for the remote shop API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/logger"
	"github.com/semanticshop/storefront/internal/metrics"
)

// DefaultBaseURL is where the shop API listens in a local setup.
const DefaultBaseURL = "http://localhost:8081/api"

const maxErrorBody = 64 << 10

// TokenSource supplies the bearer token attached to every request. An
// empty token sends the request anonymously.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

type tokenKey struct{}

// ContextWithToken returns a context whose requests carry token. It takes
// precedence over the client's TokenSource.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithCircuitBreaker guards every call with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client talks to the shop API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	breaker    *circuitbreaker.CircuitBreaker
	userAgent  string
	log        zerolog.Logger
}

// New creates a client for the API rooted at baseURL. An empty baseURL
// uses DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  "storefront/1.0",
		log:        logger.Component("shop-api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CircuitBreaker returns the breaker guarding the client, if any.
func (c *Client) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// call describes one API request. endpoint is the route template used as
// the metrics label so ids do not explode its cardinality.
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	body     any
}

func (c *Client) do(ctx context.Context, r call, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	if c.breaker == nil {
		return c.send(ctx, r, token, out)
	}
	err = c.breaker.Execute(ctx, func() error {
		return c.send(ctx, r, token, out)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	return err
}

func (c *Client) send(ctx context.Context, r call, token string, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", r.endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(r.method, r.endpoint, 0, time.Since(start))
		c.log.Warn().Err(err).Str("method", r.method).Str("path", r.path).Msg("Shop API unreachable")
		return fmt.Errorf("%s %s: %w: %w", r.method, r.path, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamRequest(r.method, r.endpoint, resp.StatusCode, time.Since(start))
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Shop API call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, r.path, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s response: %w: %w", r.endpoint, ErrBadResponse, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if token, ok := TokenFromContext(ctx); ok {
		return token, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return token, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.do(ctx, call{method: http.MethodGet, endpoint: endpoint, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, endpoint, path string, body, out any) error {
	return c.do(ctx, call{method: http.MethodPost, endpoint: endpoint, path: path, body: body}, out)
}

func (c *Client) put(ctx context.Context, endpoint, path string, body, out any) error {
	return c.do(ctx, call{method: http.MethodPut, endpoint: endpoint, path: path, body: body}, out)
}

func (c *Client) delete(ctx context.Context, endpoint, path string, out any) error {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: endpoint, path: path}, out)
}

func segment(v string) string {
	return url.PathEscape(v)
}
