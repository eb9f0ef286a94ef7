//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/crash-data-etl/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Live Mapbox checks. Needs MAPBOX_TOKEN:
//   go test -tags=mapbox ./internal/adapter/mapbox/ -count=1

func liveClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Skip("MAPBOX_TOKEN not set")
	}
	return NewClient(token, 10*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLive_ForwardGeocode_AccidentSites(t *testing.T) {
	c := liveClient(t)

	sites := []struct {
		query    string
		lat, lon float64
	}{
		{"Fort Myer, VA, United States", 38.88, -77.08},
		{"Tenerife, Canary Islands, Spain", 28.29, -16.63},
		{"Juneau, AK, United States", 58.30, -134.42},
	}
	for _, s := range sites {
		t.Run(s.query, func(t *testing.T) {
			result, err := c.ForwardGeocode(context.Background(), s.query)
			require.NoError(t, err)
			assert.InDelta(t, s.lat, result.Lat, 0.5)
			assert.InDelta(t, s.lon, result.Lon, 0.5)
			assert.NotEmpty(t, result.FormattedAddress)
		})
	}
	assert.Equal(t, float64(len(sites)), testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("success")))
}

func TestLive_ForwardGeocode_Gibberish(t *testing.T) {
	c := liveClient(t)

	// Fuzzy matching may still return a feature; only the error path matters.
	_, err := c.ForwardGeocode(context.Background(), "QQXJ-ZZ9, Nowhere")
	require.NoError(t, err)
}

func TestLive_CachedGeocoder_SecondLookupHits(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(liveClient(t), time.Minute, metrics)

	first, err := cached.ForwardGeocode(context.Background(), "Juneau, AK, United States")
	require.NoError(t, err)
	second, err := cached.ForwardGeocode(context.Background(), "  juneau, ak, united states ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")))
}
