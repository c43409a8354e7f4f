package geostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weatherpro/internal/domain/geo"
)

func TestMemoryStorePlaceExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SavePlace(ctx, "paris", geo.Place{Name: "Paris", Country: "FR"}, time.Minute))

	place, ok, err := store.GetPlace(ctx, "paris")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "FR", place.Country)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.GetPlace(ctx, "paris")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreWithoutTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SavePlace(ctx, "rome", geo.Place{Name: "Rome"}, 0))

	store.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	_, ok, err := store.GetPlace(ctx, "rome")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryStoreTopQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.IncrementQuery(ctx, "tokyo", "Tokyo"))
	require.NoError(t, store.IncrementQuery(ctx, "tokyo", "tokyo"))
	require.NoError(t, store.IncrementQuery(ctx, "lima", "Lima"))
	require.NoError(t, store.IncrementQuery(ctx, "", "ignored"))

	items, err := store.TopQueries(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []geo.TrendingCity{{Query: "Tokyo", Count: 2}}, items)

	items, err = store.TopQueries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Lima", items[1].Query)
}
