package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"SndHop/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run without Redis; the cache falls back to process memory.

func countingDiscover(cred *model.Credential, err error, calls *int) DiscoverFunc {
	return func(ctx context.Context) (*model.Credential, error) {
		*calls++
		return cred, err
	}
}

func TestCredentialCacheReusesEntry(t *testing.T) {
	calls := 0
	cred := &model.Credential{Version: "1234567890", ClientID: "abc"}
	c := NewCredentialCache(countingDiscover(cred, nil, &calls), time.Minute)

	first, err := c.Discover(context.Background())
	require.NoError(t, err)
	second, err := c.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cred, first)
	assert.Equal(t, cred, second)
	assert.Equal(t, 1, calls)
}

func TestCredentialCacheInvalidate(t *testing.T) {
	calls := 0
	cred := &model.Credential{Version: "1234567890", ClientID: "abc"}
	c := NewCredentialCache(countingDiscover(cred, nil, &calls), time.Minute)

	_, err := c.Discover(context.Background())
	require.NoError(t, err)

	c.Invalidate(context.Background())

	_, err = c.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCredentialCacheExpires(t *testing.T) {
	calls := 0
	cred := &model.Credential{Version: "1234567890", ClientID: "abc"}
	c := NewCredentialCache(countingDiscover(cred, nil, &calls), time.Millisecond)

	_, err := c.Discover(context.Background())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = c.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCredentialCacheDoesNotCacheFailures(t *testing.T) {
	calls := 0
	c := NewCredentialCache(countingDiscover(nil, errors.New("scrape failed"), &calls), time.Minute)

	_, err := c.Discover(context.Background())
	assert.Error(t, err)
	_, err = c.Discover(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}
