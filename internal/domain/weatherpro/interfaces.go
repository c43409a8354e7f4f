package weatherpro

import (
	"context"

	"github.com/yanqian/weatherpro/internal/domain/geo"
	"github.com/yanqian/weatherpro/internal/domain/usage"
)

// WeatherClient fetches current conditions and forecasts.
type WeatherClient interface {
	OneCall(ctx context.Context, lat, lon float64) (WeatherSnapshot, error)
}

// ReverseGeocoder names the place at a coordinate.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) ([]geo.Place, error)
}

// ImageSearcher returns an illustrative image URL for a query.
type ImageSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Model generates text from a prompt.
type Model interface {
	Ready() error
	Generate(ctx context.Context, purpose usage.Purpose, prompt string) (string, error)
}
