package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

const userAgent = "sessionkit/1.0"

// Client talks to the authentication backend. It owns the AuthState (the
// bearer token plus user snapshot) and attaches it to every outbound call.
// Zero value is not usable; use New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       *AuthState
	backoff    BackoffStrategy
	maxRetries int
	logger     *slog.Logger
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		auth:       NewAuthState(),
		backoff:    DefaultBackoffStrategy(),
		maxRetries: 2,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AuthState returns the client's authentication state holder.
func (c *Client) AuthState() *AuthState {
	return c.auth
}

// Call issues a single request and decodes a JSON success response into out
// (which may be nil). A failure is returned as one of the closed variants:
// *NetworkError for transport-level failures, *Error for non-2xx responses.
func (c *Client) Call(ctx context.Context, method, path string, out any, opts ...CallOption) error {
	options := newCallOptions(c.maxRetries, opts)
	return c.do(ctx, method, path, out, options)
}

// CallWithRetry issues the request, retrying transient failures with
// exponential backoff. A failure is retried iff it carries no status code,
// its status is in [500,599], or its text mentions network or timeout
// problems. Attempts are strictly sequential; once the budget is exhausted
// the last error is returned unchanged.
func (c *Client) CallWithRetry(ctx context.Context, method, path string, out any, opts ...CallOption) error {
	options := newCallOptions(c.maxRetries, opts)

	var lastErr error
	for attempt := 0; attempt <= options.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff.NextInterval(attempt)
			c.logger.LogAttrs(ctx, slog.LevelWarn, "api call failed, retrying",
				logger.Endpoint(method, path),
				slog.Duration("delay", delay),
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", options.maxRetries+1),
				logger.Error(lastErr),
				logger.Component("apiclient"),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.do(ctx, method, path, out, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			break
		}
	}

	return lastErr
}

// AuthRefresh validates the loaded token against the backend and replaces
// the AuthState with the fresh snapshot. On failure the call error is
// returned untouched and the state is left as-is; clearing is the caller's
// decision.
func (c *Client) AuthRefresh(ctx context.Context) (*User, error) {
	var resp authResponse
	if err := c.Call(ctx, http.MethodGet, "/api/auth/me", &resp); err != nil {
		return nil, err
	}

	token := resp.Token
	if token == "" {
		// Backends that don't rotate tokens on refresh omit the field
		token = c.auth.Token()
	}
	c.auth.Save(token, resp.User)

	return resp.User, nil
}

// authResponse is the shape of backend auth endpoints: the user snapshot
// plus an optional (rotated) token.
type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func newCallOptions(defaultRetries int, opts []CallOption) *callOptions {
	options := &callOptions{
		headers:    make(map[string]string),
		maxRetries: defaultRetries,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (c *Client) do(ctx context.Context, method, path string, out any, options *callOptions) error {
	fullURL := c.baseURL + path

	body, contentType, err := encodeBody(options)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("apiclient: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.auth.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range options.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{
			URL:     fullURL,
			Timeout: isTimeout(ctx, err),
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// 1MB cap keeps a misbehaving backend from exhausting memory
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return &NetworkError{URL: fullURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("apiclient: failed to decode response: %w", err)
		}
	}

	return nil
}

func encodeBody(options *callOptions) (io.Reader, string, error) {
	switch {
	case options.multipart:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for k, v := range options.formFields {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("%w: %w", ErrEncodePayload, err)
			}
		}
		for _, f := range options.formFiles {
			part, err := w.CreateFormFile(f.Field, f.Name)
			if err != nil {
				return nil, "", fmt.Errorf("%w: %w", ErrEncodePayload, err)
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, "", fmt.Errorf("%w: %w", ErrEncodePayload, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodePayload, err)
		}
		return buf, w.FormDataContentType(), nil

	case options.hasBody:
		payload, err := json.Marshal(options.body)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodePayload, err)
		}
		return bytes.NewReader(payload), "application/json", nil

	default:
		return nil, "", nil
	}
}

// decodeError turns a non-2xx response into the *Error variant. The body is
// expected to follow the backend's error shape; anything else degrades to a
// plain status-plus-text error.
func decodeError(resp *http.Response, body []byte) error {
	apiErr := &Error{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr = &Error{Message: truncate(string(body), 200)}
		}
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	if apiErr.StatusMessage == "" && apiErr.Message == "" {
		apiErr.StatusMessage = resp.Status
	}
	return apiErr
}

// shouldRetry implements the retry predicate: transport failures always
// retry, 5xx retries, and so does anything whose text mentions network or
// timeout trouble.
func shouldRetry(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 500 && apiErr.StatusCode <= 599 {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "network") || strings.Contains(msg, "timeout")
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
