package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
	"github.com/couchcryptid/hazard-decision-service/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Points_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/datasets/rainfall", r.URL.Path)
		assert.Equal(t, contentTypeJSON, r.Header.Get("Accept"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = io.WriteString(w, `{"points":[
			{"id":"S77","name":"Alexandra Road","lat":1.2937,"lon":103.8125,"value":12.4},
			{"id":"S109","name":"Ang Mo Kio Avenue 5","lat":1.3764,"lon":103.8492,"value":null}
		]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL + "/v1/datasets/")
	points, err := c.Points(context.Background(), domain.DatasetRainfall)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "Alexandra Road", points[0].Name)
	require.NotNil(t, points[0].Value)
	assert.InDelta(t, 12.4, *points[0].Value, 1e-9)
	assert.Nil(t, points[1].Value, "null reading must stay absent, not zero")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues("rainfall", "success")))
}

func TestClient_DengueClusters_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dengue-clusters", r.URL.Path)

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = io.WriteString(w, `{"type":"FeatureCollection","features":[{
			"type":"Feature",
			"properties":{"LOCALITY":"Tampines St 81","CASE_SIZE":"14"},
			"geometry":{"type":"Polygon","coordinates":[[[103.94,1.35],[103.95,1.35],[103.95,1.36],[103.94,1.35]]]}
		}]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	fc, err := c.DengueClusters(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fc)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, "Tampines St 81", f.Properties["LOCALITY"])
	require.NotNil(t, f.Geometry)
	assert.Equal(t, "Polygon", f.Geometry.Type)
}

func TestClient_Non200ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "upstream down")
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Points(context.Background(), domain.DatasetPM25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "upstream down")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues("pm25", "error")))
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = io.WriteString(w, `{"points":`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Points(context.Background(), domain.DatasetWind)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode wind-speed")
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"points":[]}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(srv.URL)
	_, err := c.Points(ctx, domain.DatasetHumidity)
	require.Error(t, err)
}
