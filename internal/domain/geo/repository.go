package geo

import (
	"context"
	"time"
)

// Geocoder resolves a free-text city query to candidate places.
type Geocoder interface {
	Direct(ctx context.Context, query string) ([]Place, error)
}

// Store caches geocode hits and tracks trending cities.
type Store interface {
	GetPlace(ctx context.Context, key string) (Place, bool, error)
	SavePlace(ctx context.Context, key string, place Place, ttl time.Duration) error
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingCity, error)
}
