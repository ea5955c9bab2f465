package apiclient

import "time"

// Config holds API client configuration.
type Config struct {
	// BaseURL is the backend root, e.g. "https://api.example.com"
	BaseURL string `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8090"`

	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// MaxRetries is the default retry budget for CallWithRetry
	MaxRetries int `env:"API_MAX_RETRIES" envDefault:"2"`

	RetryBaseDelay time.Duration `env:"API_RETRY_BASE_DELAY" envDefault:"1s"`
	RetryMaxDelay  time.Duration `env:"API_RETRY_MAX_DELAY" envDefault:"10s"`
}

// DefaultConfig returns default API client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://127.0.0.1:8090",
		Timeout:        30 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Second,
		RetryMaxDelay:  10 * time.Second,
	}
}

// NewFromConfig creates a Client from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := []Option{
		WithTimeout(cfg.Timeout),
		WithMaxRetries(cfg.MaxRetries),
		WithBackoff(ExponentialBackoff{
			InitialInterval: cfg.RetryBaseDelay,
			MaxInterval:     cfg.RetryMaxDelay,
			Multiplier:      2,
		}),
	}
	configOpts = append(configOpts, opts...)

	return New(cfg.BaseURL, configOpts...)
}
