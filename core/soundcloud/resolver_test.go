package soundcloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"SndHop/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredential() *model.Credential {
	return &model.Credential{Version: "1234567890", ClientID: testClientID}
}

func TestResolveTrack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://soundcloud.com/artist/track", r.URL.Query().Get("url"))
		assert.Equal(t, testClientID, r.URL.Query().Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"title": "Carve",
			"genre": "gothangelz",
			"policy": "ALLOW",
			"track_authorization": "tok123",
			"user": {"username": "menthol100s"},
			"media": {"transcodings": [
				{"preset": "opus_0_0", "url": "https://api.example/stream/opus"},
				{"preset": "mp3_1_0", "url": "https://api.example/stream/mp3"}
			]}
		}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := &Client{APIURL: ts.URL, HTTPClient: ts.Client()}

	meta, err := client.ResolveTrack(context.Background(), "https://soundcloud.com/artist/track", testCredential())
	require.NoError(t, err)
	assert.Equal(t, "Carve", meta.Title)
	assert.Equal(t, "gothangelz", meta.Genre)
	assert.Equal(t, "menthol100s", meta.User.Username)
	assert.Equal(t, "tok123", meta.TrackAuthorization)
	assert.Len(t, meta.Media.Transcodings, 2)
	assert.Empty(t, meta.AlbumTitle())
}

func TestResolveTrackNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := &Client{APIURL: ts.URL, HTTPClient: ts.Client()}

	_, err := client.ResolveTrack(context.Background(), "https://soundcloud.com/x/y", testCredential())
	var re *ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, "text/html", re.ContentType)
	assert.False(t, re.AuthFailure())
}

func TestResolveTrackAuthFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := &Client{APIURL: ts.URL, HTTPClient: ts.Client()}

	_, err := client.ResolveTrack(context.Background(), "https://soundcloud.com/x/y", testCredential())
	var re *ResolveError
	require.True(t, errors.As(err, &re))
	assert.True(t, re.AuthFailure())
}

func TestResolveTrackBadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"title": `)
	}))
	defer ts.Close()

	client := &Client{APIURL: ts.URL, HTTPClient: ts.Client()}

	_, err := client.ResolveTrack(context.Background(), "https://soundcloud.com/x/y", testCredential())
	var re *ResolveError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusOK, re.StatusCode)
}

func TestResolveShortURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://soundcloud.com/artist/track", http.StatusFound)
	}))
	defer ts.Close()

	host := mustHost(t, ts.URL)
	client := &Client{ShortHost: host, HTTPClient: ts.Client()}

	got := client.ResolveShortURL(context.Background(), ts.URL+"/84VP4S4xeiuv2Kqg27")
	assert.Equal(t, "https://soundcloud.com/artist/track", got)
}

func TestResolveShortURLPassThrough(t *testing.T) {
	client := &Client{ShortHost: "on.soundcloud.com", HTTPClient: http.DefaultClient}

	// Not on the short host: returned unchanged, no request made.
	got := client.ResolveShortURL(context.Background(), "https://soundcloud.com/artist/track")
	assert.Equal(t, "https://soundcloud.com/artist/track", got)
}

func TestResolveShortURLNoRedirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	host := mustHost(t, ts.URL)
	client := &Client{ShortHost: host, HTTPClient: ts.Client()}

	short := ts.URL + "/nope"
	assert.Equal(t, short, client.ResolveShortURL(context.Background(), short))
}

func mustHost(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Host
}
