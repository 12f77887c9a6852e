package soundcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"SndHop/logger"
	"SndHop/model"
)

const (
	maxManifestBytes = 4 << 20
	maxSegmentBytes  = 32 << 20
)

// FetchSegments activates a rendition, parses the resulting manifest and
// downloads every referenced segment. Individual segment failures are
// logged and skipped; only a fully failed batch is an error. The returned
// buffers are in manifest order with failed segments dropped, not padded.
func (c *Client) FetchSegments(ctx context.Context, rendition model.Transcoding, trackAuth string, cred *model.Credential) ([][]byte, error) {
	manifestURL, err := c.activateRendition(ctx, rendition, trackAuth, cred)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoStream, err)
	}

	manifest, err := c.getBody(ctx, manifestURL, maxManifestBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch manifest: %v", ErrNoSegments, err)
	}

	segmentURLs := parseManifest(manifestURL, string(manifest))
	if len(segmentURLs) == 0 {
		return nil, ErrNoSegments
	}
	if c.MaxSegments > 0 && len(segmentURLs) > c.MaxSegments {
		logger.Warn("manifest exceeds segment cap, truncating",
			logger.Int("segments", len(segmentURLs)),
			logger.Int("cap", c.MaxSegments))
		segmentURLs = segmentURLs[:c.MaxSegments]
	}

	logger.Info("downloading audio segments", logger.Int("count", len(segmentURLs)))

	slots := c.downloadSegments(ctx, segmentURLs)

	// Close the gaps left by failed downloads while preserving order.
	downloaded := make([][]byte, 0, len(slots))
	for _, data := range slots {
		if data != nil {
			downloaded = append(downloaded, data)
		}
	}
	if len(downloaded) == 0 {
		return nil, ErrNoSegmentsDownloaded
	}
	if len(downloaded) < len(segmentURLs) {
		logger.Warn("some segments failed to download",
			logger.Int("failed", len(segmentURLs)-len(downloaded)),
			logger.Int("total", len(segmentURLs)))
	}
	return downloaded, nil
}

// activateRendition exchanges the transcoding URL for the manifest URL.
func (c *Client) activateRendition(ctx context.Context, rendition model.Transcoding, trackAuth string, cred *model.Credential) (string, error) {
	activateURL := fmt.Sprintf("%s?client_id=%s&track_authorization=%s",
		rendition.URL, url.QueryEscape(cred.ClientID), url.QueryEscape(trackAuth))

	body, err := c.getBody(ctx, activateURL, maxResolveBytes)
	if err != nil {
		return "", err
	}

	var stream struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &stream); err != nil {
		return "", fmt.Errorf("decode stream response: %w", err)
	}
	if stream.URL == "" {
		return "", fmt.Errorf("stream response missing url")
	}
	return stream.URL, nil
}

// downloadSegments fetches every URL with a bounded worker pool. Results
// land in a pre-sized slot slice indexed by segment position, so no
// ordering lock is needed; failed downloads leave a nil slot.
func (c *Client) downloadSegments(ctx context.Context, segmentURLs []string) [][]byte {
	slots := make([][]byte, len(segmentURLs))

	workers := c.SegmentWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(segmentURLs) {
		workers = len(segmentURLs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				data, err := c.getBody(ctx, segmentURLs[i], maxSegmentBytes)
				if err != nil {
					logger.Warn("segment download failed",
						logger.Int("index", i), logger.ErrorField(err))
					continue
				}
				slots[i] = data
			}
		}()
	}

	for i := range segmentURLs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Stop handing out work; in-flight requests fail on their own.
			close(jobs)
			wg.Wait()
			return slots
		}
	}
	close(jobs)
	wg.Wait()
	return slots
}
