package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 50
)

// Config controls forward-geocode caching.
type Config struct {
	CacheTTL time.Duration
}

// Service exposes forward geocoding.
type Service interface {
	Geocode(ctx context.Context, query string) (Place, error)
	Trending(ctx context.Context, limit int) ([]TrendingCity, error)
}

type service struct {
	cfg      Config
	geocoder Geocoder
	store    Store
	logger   *slog.Logger
}

// NewService wires the geocoding domain.
func NewService(cfg Config, geocoder Geocoder, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		store:    store,
		logger:   logger.With("component", "geo.service"),
	}
}

func (s *service) Geocode(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, apperrors.Wrap(apperrors.CodeInvalidInput, "City name 'q' is required", nil)
	}
	key := normalizeQuery(query)

	if place, ok := s.cached(ctx, key); ok {
		s.track(ctx, key, place.Name)
		return place, nil
	}

	places, err := s.geocoder.Direct(ctx, query)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeConfig) {
			return Place{}, err
		}
		return Place{}, apperrors.Wrap(apperrors.CodeUpstream, "Failed to connect to the geocoding service.", err)
	}
	if len(places) == 0 {
		return Place{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("Could not find coordinates for city: %s", query), nil)
	}

	place := places[0]
	if s.store != nil && s.cfg.CacheTTL > 0 {
		if err := s.store.SavePlace(ctx, key, place, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("cache geocode result failed", "query", key, "error", err)
		}
	}
	s.track(ctx, key, place.Name)
	s.logger.Info("geocode resolved", "query", query, "name", place.Name, "lat", place.Lat, "lon", place.Lon)
	return place, nil
}

func (s *service) Trending(ctx context.Context, limit int) ([]TrendingCity, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}
	if s.store == nil {
		return []TrendingCity{}, nil
	}
	items, err := s.store.TopQueries(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUpstream, "failed to load trending cities", err)
	}
	if items == nil {
		items = []TrendingCity{}
	}
	return items, nil
}

func (s *service) cached(ctx context.Context, key string) (Place, bool) {
	if s.store == nil || s.cfg.CacheTTL <= 0 {
		return Place{}, false
	}
	place, ok, err := s.store.GetPlace(ctx, key)
	if err != nil {
		s.logger.Warn("geocode cache lookup failed", "query", key, "error", err)
		return Place{}, false
	}
	if ok {
		s.logger.Debug("geocode cache hit", "query", key)
	}
	return place, ok
}

func (s *service) track(ctx context.Context, key, display string) {
	if s.store == nil {
		return
	}
	if display == "" {
		display = key
	}
	if err := s.store.IncrementQuery(ctx, key, display); err != nil {
		s.logger.Warn("trending update failed", "query", key, "error", err)
	}
}
