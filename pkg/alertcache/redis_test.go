package alertcache

import (
	"context"
	"testing"
	"time"

	"ojolmate-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, "test:alerts", ttl)
}

func TestCache_SaveAndLoad(t *testing.T) {
	cache := setupCache(t, 0)
	ctx := context.Background()

	alerts := []models.Alert{
		{
			ID:      42,
			Type:    models.AlertTypeService,
			Message: "Scheduled service due at 5.000 km for component oil filter",
			Status:  models.AlertStatusUnread,
			Date:    "2026-03-14",
		},
		{
			ID:      1757923200000,
			Type:    models.AlertTypeFuel,
			Message: "Fuel running low, predicted remaining range 10.0 km",
			Status:  models.AlertStatusRead,
			Date:    "2026-03-14",
		},
	}

	require.NoError(t, cache.Save(ctx, alerts))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, alerts, loaded)
}

func TestCache_LoadMissingKey(t *testing.T) {
	cache := setupCache(t, 0)

	loaded, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCache_SaveOverwrites(t *testing.T) {
	cache := setupCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, []models.Alert{{ID: 1, Type: models.AlertTypeFuel}}))
	require.NoError(t, cache.Save(ctx, nil))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
