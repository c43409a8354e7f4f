package weatherpro

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/weatherpro/internal/domain/usage"
	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

const fallbackCity = "Your Location"

var errNoPlace = errors.New("reverse geocode returned no places")

// Service composes weather, recommendations and imagery for a coordinate.
type Service interface {
	Compose(ctx context.Context, req Request) (Response, error)
}

type service struct {
	weather WeatherClient
	places  ReverseGeocoder
	images  ImageSearcher
	model   Model
	logger  *slog.Logger
}

// NewService wires up the composer.
func NewService(weather WeatherClient, places ReverseGeocoder, images ImageSearcher, model Model, logger *slog.Logger) Service {
	return &service{
		weather: weather,
		places:  places,
		images:  images,
		model:   model,
		logger:  logger.With("component", "weatherpro.service"),
	}
}

func (s *service) Compose(ctx context.Context, req Request) (Response, error) {
	coord, err := parseCoordinate(req)
	if err != nil {
		return Response{}, err
	}

	var (
		snapshot WeatherSnapshot
		city     Lookup[string]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.weather.OneCall(gctx, coord.Lat, coord.Lon)
		if err != nil {
			return err
		}
		snapshot = snap
		return nil
	})
	g.Go(func() error {
		city = s.lookupCity(gctx, coord)
		return nil
	})
	if err := g.Wait(); err != nil {
		if apperrors.CodeOf(err) != "" {
			return Response{}, err
		}
		return Response{}, apperrors.Wrap(apperrors.CodeUpstream, err.Error(), err)
	}

	cityName := city.Or(fallbackCity)
	alert := rainAlert(snapshot.Hourly)
	s.logger.Info("weather fetched", "city", cityName, "condition", snapshot.Condition, "temp", snapshot.Temperature)

	if err := s.model.Ready(); err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeUnavailable, "language model is not initialized", err)
	}
	reply, err := s.model.Generate(ctx, usage.PurposeRecommendation, buildRecommendationPrompt(cityName, snapshot.Condition, snapshot.Temperature))
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeLLM, "recommendation request failed", err)
	}
	recs, err := parseRecommendations(reply)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeParse, "failed to parse model response: "+err.Error(), err)
	}

	clothingImg, foodImg, cityImg := s.lookupImages(ctx, recs.Clothing, recs.Food, cityName)

	daily := snapshot.Daily
	if len(daily) == 0 || string(daily) == "null" {
		daily = []byte("[]")
	}

	return Response{
		City:      cityName,
		Current:   snapshot.Current,
		Daily:     daily,
		RainAlert: alert,
		Recommendations: Recommendations{
			Clothing: ImageItem{Text: recs.Clothing, Image: clothingImg},
			Food:     ImageItem{Text: recs.Food, Image: foodImg},
			Product:  ProductItem{Text: recs.Product, Links: shoppingLinks(recs.Product)},
			Tourist:  TouristItem{Text: recs.TouristAdvice, Place: recs.TouristPlace, Image: cityImg},
		},
	}, nil
}

func parseCoordinate(req Request) (Coordinate, error) {
	latRaw, lonRaw := strings.TrimSpace(req.Lat), strings.TrimSpace(req.Lon)
	if latRaw == "" || lonRaw == "" {
		return Coordinate{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Latitude and longitude are required", nil)
	}
	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	if err := errors.Join(latErr, lonErr); err != nil {
		return Coordinate{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Latitude and longitude must be numeric", err)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

func (s *service) lookupCity(ctx context.Context, coord Coordinate) Lookup[string] {
	places, err := s.places.Reverse(ctx, coord.Lat, coord.Lon)
	if err != nil {
		s.logger.Warn("reverse geocode failed", "lat", coord.Lat, "lon", coord.Lon, "error", err)
		return degraded[string](err)
	}
	if len(places) == 0 || places[0].Name == "" {
		return degraded[string](errNoPlace)
	}
	return found(places[0].Name)
}

func (s *service) lookupImage(ctx context.Context, query string) Lookup[string] {
	if strings.TrimSpace(query) == "" {
		return found("")
	}
	image, err := s.images.Search(ctx, query)
	if err != nil {
		s.logger.Warn("image lookup failed", "query", query, "error", err)
		return degraded[string](err)
	}
	return found(image)
}

// lookupImages runs the three image searches concurrently. Each result falls
// back to an empty URL independently.
func (s *service) lookupImages(ctx context.Context, clothing, food, city string) (string, string, string) {
	queries := [3]string{clothing, food, city}
	var results [3]string
	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			results[i] = s.lookupImage(ctx, q).Or("")
			return nil
		})
	}
	_ = g.Wait()
	return results[0], results[1], results[2]
}
