package apiclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// Useful for custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMaxRetries sets the default retry budget for CallWithRetry.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithBackoff sets the backoff strategy for retries.
func WithBackoff(strategy BackoffStrategy) Option {
	return func(c *Client) {
		if strategy != nil {
			c.backoff = strategy
		}
	}
}

// WithClientLogger sets the logger for retry and call diagnostics.
func WithClientLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// File is a named file part of a multipart request.
type File struct {
	Field   string
	Name    string
	Content []byte
}

// callOptions contains per-call configuration.
type callOptions struct {
	body       any
	hasBody    bool
	formFields map[string]string
	formFiles  []File
	multipart  bool
	headers    map[string]string
	maxRetries int
}

// CallOption configures a single call.
type CallOption func(*callOptions)

// WithBody sets a JSON request body.
func WithBody(body any) CallOption {
	return func(o *callOptions) {
		o.body = body
		o.hasBody = true
	}
}

// WithMultipartForm sends the request as multipart/form-data with the given
// fields and files instead of a JSON body.
func WithMultipartForm(fields map[string]string, files ...File) CallOption {
	return func(o *callOptions) {
		o.multipart = true
		o.formFields = fields
		o.formFiles = files
	}
}

// WithHeader adds a header to the request.
func WithHeader(key, value string) CallOption {
	return func(o *callOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithRetryBudget overrides the client's default retry count for a single
// CallWithRetry invocation.
func WithRetryBudget(n int) CallOption {
	return func(o *callOptions) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}
