package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
	"github.com/couchcryptid/hazard-decision-service/internal/observability"
)

// Client implements domain.Feed against the upstream dataset provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a dataset feed client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// Points fetches a station or region dataset.
func (c *Client) Points(ctx context.Context, ds domain.Dataset) ([]domain.Point, error) {
	var resp pointsResponse
	if err := c.doRequest(ctx, ds, &resp); err != nil {
		return nil, err
	}
	return resp.Points, nil
}

// DengueClusters fetches the dengue cluster GeoJSON collection.
func (c *Client) DengueClusters(ctx context.Context) (*domain.FeatureCollection, error) {
	var fc domain.FeatureCollection
	if err := c.doRequest(ctx, domain.DatasetDengue, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (c *Client) doRequest(ctx context.Context, ds domain.Dataset, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		c.metrics.FeedRequests.WithLabelValues(string(ds), outcome).Inc()
		c.metrics.FeedRequestDuration.WithLabelValues(string(ds)).Observe(time.Since(start).Seconds())
	}()

	u := c.baseURL + "/" + url.PathEscape(string(ds))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", ds, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("feed API error: %s: status %d: %s", ds, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", ds, err)
	}

	c.logger.Debug("dataset fetched", "dataset", ds, "duration", time.Since(start))
	return nil
}

// Feed API response types.

type pointsResponse struct {
	Points []domain.Point `json:"points"`
}
