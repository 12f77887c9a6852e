package soundcloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"SndHop/logger"
	"SndHop/model"

	"github.com/PuerkitoBio/goquery"
)

// The web app embeds both values the private API needs: a release version
// in an inline script, and a client_id buried in one of the bundled
// scripts served from the asset CDN.
var (
	versionPattern  = regexp.MustCompile(`window\.__sc_version="([0-9]{10})"`)
	clientIDPattern = regexp.MustCompile(`\("client_id=([A-Za-z0-9]{32})"\)`)
)

const (
	maxPageBytes   = 8 << 20  // landing page
	maxScriptBytes = 32 << 20 // bundled JS can be large
)

// DiscoverCredential scrapes the landing page for the release version and
// client_id. The pair is not validated here; a rotated credential only
// surfaces as a failing resolve call later.
func (c *Client) DiscoverCredential(ctx context.Context) (*model.Credential, error) {
	page, err := c.getBody(ctx, c.BaseURL+"/", maxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch landing page: %w", err)
	}

	match := versionPattern.FindSubmatch(page)
	if match == nil {
		// No fallback: without the version the credential is useless.
		return nil, errors.New("no version marker on landing page")
	}
	version := string(match[1])

	clientID, err := c.findClientID(ctx, page)
	if err != nil {
		return nil, err
	}

	logger.Info("discovered soundcloud credential",
		logger.String("version", version),
		logger.String("clientIdPrefix", clientID[:4]))

	return &model.Credential{Version: version, ClientID: clientID}, nil
}

// findClientID walks the page's <script src> tags in document order,
// keeping those served from the asset CDN, and downloads each until one
// contains a client_id call expression.
func (c *Client) findClientID(ctx context.Context, page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse landing page: %w", err)
	}

	var candidates []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if strings.HasPrefix(src, c.AssetHost) {
			candidates = append(candidates, src)
		}
	})
	if len(candidates) == 0 {
		return "", errors.New("no asset scripts on landing page")
	}

	for _, scriptURL := range candidates {
		body, err := c.getBody(ctx, scriptURL, maxScriptBytes)
		if err != nil {
			logger.Warn("failed to fetch asset script",
				logger.String("url", scriptURL), logger.ErrorField(err))
			continue
		}
		if m := clientIDPattern.FindSubmatch(body); m != nil {
			return string(m[1]), nil
		}
	}
	return "", errors.New("no client_id in any asset script")
}
