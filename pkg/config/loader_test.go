package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/config"
)

type testConfig struct {
	BaseURL string        `env:"TEST_BASE_URL" envDefault:"http://127.0.0.1:8090"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"30s"`
	Retries int           `env:"TEST_RETRIES" envDefault:"2"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://127.0.0.1:8090", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Retries)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_BASE_URL", "https://api.example.com")
	t.Setenv("TEST_TIMEOUT", "5s")
	t.Setenv("TEST_RETRIES", "4")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Retries)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("TEST_RETRIES", "not-a-number")

	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Setenv("TEST_RETRIES", "not-a-number")

	assert.Panics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}
