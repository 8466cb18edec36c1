package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crawlkit/crawlkit/internal/config"
)

func TestNewWithMemoryProviders(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Dispatcher())
	require.NotNil(t, a.Logger())
	require.Nil(t, a.Poller())
}

func TestNewWiresFeedPoller(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Feed.URL = "https://feed.example.com/events"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Poller())
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Storage.Provider = "tape"

	_, err = New(context.Background(), cfg)
	require.ErrorContains(t, err, "unknown storage provider")
}
