package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gametrack/pkg/config"
	"gametrack/pkg/messages"
	"gametrack/pkg/regions"

	"github.com/rs/zerolog"
)

// Caller sends an authenticated request and returns the JSON body.
type Caller interface {
	Call(ctx context.Context, endpoint string, opts *RequestOptions) ([]byte, error)
}

// RequestOptions are the optional parts of a call.
type RequestOptions struct {
	Method  string // Defaults to GET.
	Params  map[string]string
	Headers map[string]string
}

// ClientOptions configures a Client.
type ClientOptions struct {
	ApiKey            string
	BaseURL           string
	MaxAttempts       int
	DefaultRetryAfter time.Duration
	HTTPClient        *http.Client
	Limiter           *RateLimiter
	Logger            zerolog.Logger
}

// Client is the rate limited Riot API client.
// Every attempt takes a slot from the shared limiter, a 429 only puts the calling goroutine to sleep.
type Client struct {
	apiKey            string
	baseURL           string
	maxAttempts       int
	defaultRetryAfter time.Duration
	httpClient        *http.Client
	limiter           *RateLimiter
	logger            zerolog.Logger
}

// NewClient creates a client with the given options.
func NewClient(opts ClientOptions) *Client {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}

	if opts.DefaultRetryAfter <= 0 {
		opts.DefaultRetryAfter = time.Second
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	if opts.Limiter == nil {
		opts.Limiter = &RateLimiter{}
	}

	return &Client{
		apiKey:            opts.ApiKey,
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		maxAttempts:       opts.MaxAttempts,
		defaultRetryAfter: opts.DefaultRetryAfter,
		httpClient:        opts.HTTPClient,
		limiter:           opts.Limiter,
		logger:            opts.Logger,
	}
}

// NewClientFromConfig creates the client for the configured region with its own limiter.
func NewClientFromConfig(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	baseURL := cfg.Riot.BaseURL
	if baseURL == "" {
		region, err := regions.ParseMainRegion(cfg.Riot.Region)
		if err != nil {
			return nil, fmt.Errorf("couldn't create the riot client: %w", err)
		}
		baseURL = regions.BaseURL(region)
	}

	return NewClient(ClientOptions{
		ApiKey:            cfg.Riot.ApiKey,
		BaseURL:           baseURL,
		MaxAttempts:       cfg.Riot.MaxAttempts,
		DefaultRetryAfter: cfg.Riot.DefaultRetryAfter,
		HTTPClient:        &http.Client{Timeout: cfg.Riot.RequestTimeout},
		Limiter:           NewRateLimiter(cfg.Limits),
		Logger:            logger,
	}), nil
}

// Call sends the request, retrying on 429 and transport failures.
// Any other non success status is returned at once as an *APIError.
func (c *Client) Call(ctx context.Context, endpoint string, opts *RequestOptions) ([]byte, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	reqURL, err := c.buildURL(endpoint, opts.Params)
	if err != nil {
		return nil, err
	}

	var lastErr *APIError
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		status, header, body, err := c.do(ctx, method, reqURL, opts.Headers)
		wait := c.defaultRetryAfter

		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			lastErr = &APIError{Kind: ErrUpstream, Endpoint: endpoint, Attempts: attempt, Err: err}
			c.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Msg("request failed")

		case status == http.StatusOK:
			// An empty answer is returned as is, the caller decides what no data means.
			if len(bytes.TrimSpace(body)) == 0 {
				return []byte{}, nil
			}
			if !json.Valid(body) {
				return nil, &APIError{
					Kind:       ErrUpstream,
					Endpoint:   endpoint,
					StatusCode: status,
					Attempts:   attempt,
					Err:        errors.New(messages.FailedToParseMsg),
				}
			}
			return body, nil

		case status == http.StatusTooManyRequests:
			wait = parseRetryAfter(header.Get("Retry-After"), c.defaultRetryAfter)
			lastErr = newStatusError(endpoint, status, body, attempt)
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Dur("retry_after", wait).
				Msg("rate limited")

		default:
			return nil, newStatusError(endpoint, status, body, attempt)
		}

		// No point in waiting after the last attempt.
		if attempt == c.maxAttempts {
			break
		}

		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	if errors.Is(lastErr, ErrRateLimitExhausted) {
		c.logger.Error().
			Str("endpoint", endpoint).
			Int("attempts", lastErr.Attempts).
			Msg("rate limit retries exhausted")
	}

	return nil, lastErr
}

// do runs a single attempt and reads the whole body.
func (c *Client) do(ctx context.Context, method, reqURL string, headers map[string]string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("couldn't create the request: %w", err)
	}

	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("couldn't read the response body: %w", err)
	}

	return resp.StatusCode, resp.Header, body, nil
}

// buildURL joins the base URL, the endpoint and the query parameters.
func (c *Client) buildURL(endpoint string, params map[string]string) (string, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %s: %w", endpoint, err)
	}

	if len(params) > 0 {
		query := u.Query()
		for k, v := range params {
			query.Set(k, v)
		}
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}

// parseRetryAfter reads the Retry-After header in whole seconds.
func parseRetryAfter(value string, fallback time.Duration) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Get calls the endpoint and decodes the body into T.
// The raw body is returned as well for callers that store the payload.
// An empty body gives a nil T and no error.
func Get[T any](ctx context.Context, caller Caller, endpoint string, params map[string]string) (*T, []byte, error) {
	body, err := caller.Call(ctx, endpoint, &RequestOptions{Params: params})
	if err != nil {
		return nil, nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil, nil
	}

	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, nil, &APIError{
			Kind:       ErrUpstream,
			Endpoint:   endpoint,
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("%s: %w", messages.FailedToParseMsg, err),
		}
	}

	return &data, body, nil
}
