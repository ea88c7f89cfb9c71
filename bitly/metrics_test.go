package bitly

import (
	"context"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/bitly/internal/bitlytest"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	client, server := newTestClient(t, WithMetrics(reg))
	server.Handle("lookup", func(url.Values) bitlytest.Envelope {
		return bitlytest.Fail(500, "INVALID_URI")
	})

	ctx := context.Background()
	_, err := client.Shorten(ctx, "https://example.com")
	require.NoError(t, err)
	_, err = client.Shorten(ctx, "https://example.org")
	require.NoError(t, err)
	_, err = client.Lookup(ctx, "bad")
	require.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(client.metrics.requests.WithLabelValues("shorten", outcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(client.metrics.requests.WithLabelValues("lookup", outcomeAPIError)))
	assert.Equal(t, 2, testutil.CollectAndCount(client.metrics.duration))
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	a, err := New("token", WithMetrics(reg))
	require.NoError(t, err)
	b, err := New("token", WithMetrics(reg))
	require.NoError(t, err)

	assert.Same(t, a.metrics.requests, b.metrics.requests)
	assert.Same(t, a.metrics.duration, b.metrics.duration)
}

func TestMetrics_Disabled(t *testing.T) {
	client, _ := newTestClient(t)
	assert.Nil(t, client.metrics)

	_, err := client.Info(context.Background(), "abc")
	assert.NoError(t, err)
}
