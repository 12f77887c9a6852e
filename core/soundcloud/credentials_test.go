package soundcloud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "aAbBcCdDeEfFgGhH0123456789zZxXyY"

func newDiscoveryServer(t *testing.T, landing func(assetBase string) string) *Client {
	t.Helper()

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	assetBase := ts.URL + "/assets/"
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, landing(assetBase))
	})
	mux.HandleFunc("/assets/decoy.js", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `console.log("nothing interesting here")`)
	})
	mux.HandleFunc("/assets/app.js", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `var e=t.concat("client_id=%s")`, testClientID)
	})

	client := &Client{
		BaseURL:        ts.URL,
		AssetHost:      assetBase,
		MaxSegments:    100,
		SegmentWorkers: 2,
		HTTPClient:     ts.Client(),
	}
	return client
}

func TestDiscoverCredential(t *testing.T) {
	client := newDiscoveryServer(t, func(assetBase string) string {
		return `<html><head>` +
			`<script>window.__sc_version="1234567890"</script>` +
			`<script src="https://elsewhere.example/ignored.js"></script>` +
			`<script src="` + assetBase + `decoy.js"></script>` +
			`<script src="` + assetBase + `app.js"></script>` +
			`</head><body></body></html>`
	})

	cred, err := client.DiscoverCredential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1234567890", cred.Version)
	assert.Equal(t, testClientID, cred.ClientID)
}

func TestDiscoverCredentialNoVersion(t *testing.T) {
	client := newDiscoveryServer(t, func(assetBase string) string {
		return `<html><head><script src="` + assetBase + `app.js"></script></head></html>`
	})

	cred, err := client.DiscoverCredential(context.Background())
	assert.Error(t, err)
	assert.Nil(t, cred)
}

func TestDiscoverCredentialNoAssetScripts(t *testing.T) {
	client := newDiscoveryServer(t, func(assetBase string) string {
		return `<html><head>` +
			`<script>window.__sc_version="1234567890"</script>` +
			`<script src="https://elsewhere.example/app.js"></script>` +
			`</head></html>`
	})

	_, err := client.DiscoverCredential(context.Background())
	assert.Error(t, err)
}

func TestDiscoverCredentialNoClientIDInScripts(t *testing.T) {
	client := newDiscoveryServer(t, func(assetBase string) string {
		return `<html><head>` +
			`<script>window.__sc_version="1234567890"</script>` +
			`<script src="` + assetBase + `decoy.js"></script>` +
			`</head></html>`
	})

	_, err := client.DiscoverCredential(context.Background())
	assert.Error(t, err)
}
