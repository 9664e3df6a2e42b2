package cli

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/goganux/texas-career-path-explorer/internal/config"
	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Memory(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, config.Default(), logging.NewNop())
	require.NoError(t, err)
	defer app.Close()

	set, err := app.Pathways.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, set.Careers, 4)

	_, ok := app.Lister()
	assert.True(t, ok)

	res, err := app.Sessions.Open(ctx, 1)
	require.NoError(t, err)
	ids, err := app.Sessions.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{res.Session.SessionID}, ids)
}

func TestNewApp_Loam(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Pathways.Source = config.SourceLoam
	cfg.Pathways.Dir = t.TempDir()

	app, err := NewApp(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	defer app.Close()

	set, err := app.Pathways.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, set.All())

	// The catalog still comes from the bundled seed.
	interests, err := app.Catalog.ListInterests(ctx)
	require.NoError(t, err)
	assert.Len(t, interests, 5)
}

func TestNewApp_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Sessions.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()

	app, err := NewApp(ctx, cfg, logging.NewNop())
	require.NoError(t, err)

	res, err := app.Sessions.Open(ctx, 2)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Redis.Prefix+res.Session.SessionID), "session is persisted in redis")

	sel, err := app.Sessions.Select(ctx, res.Session.SessionID, 25)
	require.NoError(t, err)
	assert.Equal(t, "Executive Chef", sel.Node.Title)

	require.NoError(t, app.Close())
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Sessions.Store = config.StoreRedis
	cfg.Redis.Addr = addr

	_, err := NewApp(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "redis unavailable")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(io.Discard, config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), -4))

	_, err = NewLogger(io.Discard, config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
