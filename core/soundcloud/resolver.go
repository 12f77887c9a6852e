package soundcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"SndHop/logger"
	"SndHop/model"
)

const maxResolveBytes = 4 << 20

// ResolveError reports a failed resolve call with enough detail for the
// caller to classify it.
type ResolveError struct {
	StatusCode  int
	ContentType string
	Err         error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve failed: %v", e.Err)
	}
	return fmt.Sprintf("resolve failed: %d %s", e.StatusCode, e.ContentType)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// AuthFailure reports whether the failure looks like a rotated or revoked
// credential rather than a bad track URL.
func (e *ResolveError) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ResolveTrack calls the private resolve endpoint and decodes the track
// document. Any non-200 status or undecodable body is a *ResolveError.
func (c *Client) ResolveTrack(ctx context.Context, trackURL string, cred *model.Credential) (*model.TrackMetadata, error) {
	endpoint := fmt.Sprintf("%s/resolve?url=%s&client_id=%s",
		c.APIURL, url.QueryEscape(trackURL), url.QueryEscape(cred.ClientID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ResolveError{Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &ResolveError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ResolveError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	var meta model.TrackMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, &ResolveError{StatusCode: resp.StatusCode, Err: err}
	}
	return &meta, nil
}

// ResolveShortURL expands an on.soundcloud.com short link by reading the
// redirect Location without following it. Best effort: anything unexpected
// returns the input unchanged.
func (c *Client) ResolveShortURL(ctx context.Context, rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host != c.ShortHost {
		return rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return rawURL
	}

	// Read the redirect itself instead of the page it points at.
	noFollow := *c.HTTPClient
	noFollow.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		logger.Warn("short url expansion failed",
			logger.String("url", rawURL), logger.ErrorField(err))
		return rawURL
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		if loc := resp.Header.Get("Location"); loc != "" {
			return loc
		}
	}
	return rawURL
}
