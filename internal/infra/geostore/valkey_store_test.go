package geostore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weatherpro/internal/domain/geo"
)

func newTestValkeyStore(t *testing.T) (*ValkeyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return NewValkeyStore(client, "test"), mr
}

func TestValkeyStorePlaceRoundTripAndTTL(t *testing.T) {
	store, mr := newTestValkeyStore(t)
	ctx := context.Background()

	_, ok, err := store.GetPlace(ctx, "kyoto")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SavePlace(ctx, "kyoto", geo.Place{Name: "Kyoto", Lat: 35.01, Lon: 135.76, Country: "JP"}, time.Minute))
	place, ok, err := store.GetPlace(ctx, "kyoto")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "JP", place.Country)
	require.Equal(t, time.Minute, mr.TTL("test:place:kyoto"))

	mr.FastForward(2 * time.Minute)
	_, ok, err = store.GetPlace(ctx, "kyoto")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreTrending(t *testing.T) {
	store, _ := newTestValkeyStore(t)
	ctx := context.Background()

	require.NoError(t, store.IncrementQuery(ctx, "cairo", "Cairo"))
	require.NoError(t, store.IncrementQuery(ctx, "cairo", "cairo"))
	require.NoError(t, store.IncrementQuery(ctx, "accra", "Accra"))

	items, err := store.TopQueries(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []geo.TrendingCity{{Query: "Cairo", Count: 2}, {Query: "Accra", Count: 1}}, items)
}
