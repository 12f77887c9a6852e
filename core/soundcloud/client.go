package soundcloud

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"SndHop/config"
)

// Browser-like user agent. Some of SoundCloud's segment CDNs reject
// requests without one.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client talks to the SoundCloud web app and its private api-v2 API.
// All endpoints are configurable so tests can substitute local servers.
type Client struct {
	BaseURL   string // landing page, e.g. https://soundcloud.com
	APIURL    string // e.g. https://api-v2.soundcloud.com
	AssetHost string // script CDN prefix, e.g. https://a-v2.sndcdn.com/
	ShortHost string // short-link host, e.g. on.soundcloud.com

	MaxSegments    int
	SegmentWorkers int

	HTTPClient *http.Client
}

// NewClient creates a client from the application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:        cfg.SoundcloudBaseURL,
		APIURL:         cfg.SoundcloudAPIURL,
		AssetHost:      cfg.SoundcloudAssetHost,
		ShortHost:      cfg.SoundcloudShortHost,
		MaxSegments:    cfg.MaxSegments,
		SegmentWorkers: cfg.SegmentWorkers,
		HTTPClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// getBody GETs a URL and returns its body, capped at limit bytes.
// A non-2xx status is an error.
func (c *Client) getBody(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("body exceeds %d byte limit", limit)
	}
	return body, nil
}
