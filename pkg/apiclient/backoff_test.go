package apiclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
)

func TestExponentialBackoff_NextInterval(t *testing.T) {
	t.Parallel()

	backoff := apiclient.ExponentialBackoff{
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
	}

	// delay before retry i+1 equals min(1s * 2^i, 10s)
	assert.Equal(t, 1*time.Second, backoff.NextInterval(1))
	assert.Equal(t, 2*time.Second, backoff.NextInterval(2))
	assert.Equal(t, 4*time.Second, backoff.NextInterval(3))
	assert.Equal(t, 8*time.Second, backoff.NextInterval(4))
	assert.Equal(t, 10*time.Second, backoff.NextInterval(5))
	assert.Equal(t, 10*time.Second, backoff.NextInterval(10))
}

func TestExponentialBackoff_Defaults(t *testing.T) {
	t.Parallel()

	backoff := apiclient.ExponentialBackoff{}

	assert.Equal(t, 1*time.Second, backoff.NextInterval(1))
	assert.Equal(t, 10*time.Second, backoff.NextInterval(5))
	assert.Equal(t, time.Duration(0), backoff.NextInterval(0))
	assert.Equal(t, time.Duration(0), backoff.NextInterval(-1))
}

func TestFixedBackoff_NextInterval(t *testing.T) {
	t.Parallel()

	backoff := apiclient.FixedBackoff{Interval: 50 * time.Millisecond}

	assert.Equal(t, 50*time.Millisecond, backoff.NextInterval(1))
	assert.Equal(t, 50*time.Millisecond, backoff.NextInterval(7))
	assert.Equal(t, time.Duration(0), backoff.NextInterval(0))
}

func TestDefaultBackoffStrategy(t *testing.T) {
	t.Parallel()

	backoff := apiclient.DefaultBackoffStrategy()

	assert.Equal(t, 1*time.Second, backoff.NextInterval(1))
	assert.Equal(t, 2*time.Second, backoff.NextInterval(2))
	assert.Equal(t, 10*time.Second, backoff.NextInterval(20))
}
