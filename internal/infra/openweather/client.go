package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weatherpro/internal/domain/geo"
	"github.com/yanqian/weatherpro/internal/domain/weatherpro"
	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

const (
	defaultGeoBaseURL     = "http://api.openweathermap.org/geo/1.0"
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/3.0"
	defaultTimeout        = 10 * time.Second
)

var errMissingCurrent = errors.New("weather response missing current conditions")

// Config holds the OpenWeather credentials and endpoints.
type Config struct {
	APIKey         string
	GeoBaseURL     string
	WeatherBaseURL string
	Timeout        time.Duration
}

// Client talks to the OpenWeather geocoding and one-call APIs.
type Client struct {
	apiKey         string
	geoBaseURL     string
	weatherBaseURL string
	httpClient     *http.Client
}

// NewClient builds an API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:         strings.TrimSpace(cfg.APIKey),
		geoBaseURL:     baseOrDefault(cfg.GeoBaseURL, defaultGeoBaseURL),
		weatherBaseURL: baseOrDefault(cfg.WeatherBaseURL, defaultWeatherBaseURL),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Direct resolves a city name to at most one place.
func (c *Client) Direct(ctx context.Context, query string) ([]geo.Place, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)

	var raw []geoEntry
	if err := c.getJSON(ctx, c.geoBaseURL+"/direct", params, "geocode", &raw); err != nil {
		return nil, err
	}
	return toPlaces(raw), nil
}

// Reverse names the place at a coordinate, returning at most one entry.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) ([]geo.Place, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	params := coordParams(lat, lon)
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)

	var raw []geoEntry
	if err := c.getJSON(ctx, c.geoBaseURL+"/reverse", params, "reverse geocode", &raw); err != nil {
		return nil, err
	}
	return toPlaces(raw), nil
}

// OneCall fetches current conditions plus hourly and daily forecasts in metric units.
func (c *Client) OneCall(ctx context.Context, lat, lon float64) (weatherpro.WeatherSnapshot, error) {
	if err := c.requireKey(); err != nil {
		return weatherpro.WeatherSnapshot{}, err
	}
	params := coordParams(lat, lon)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("exclude", "minutely")

	var raw oneCallResponse
	if err := c.getJSON(ctx, c.weatherBaseURL+"/onecall", params, "weather", &raw); err != nil {
		return weatherpro.WeatherSnapshot{}, err
	}
	return raw.snapshot()
}

func (c *Client) requireKey() error {
	if c.apiKey == "" {
		return apperrors.Wrap(apperrors.CodeConfig, "OPENWEATHER_API_KEY environment variable not set.", nil)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, label string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", label, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", label, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s request error: status=%d body=%s", label, resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", label, err)
	}
	return nil
}

// redact drops the request URL, which carries the API key, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}

func baseOrDefault(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = fallback
	}
	return strings.TrimRight(trimmed, "/")
}

type geoEntry struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

func toPlaces(entries []geoEntry) []geo.Place {
	places := make([]geo.Place, 0, len(entries))
	for _, e := range entries {
		places = append(places, geo.Place{
			Name:    e.Name,
			Lat:     e.Lat,
			Lon:     e.Lon,
			Country: e.Country,
			State:   e.State,
		})
	}
	return places
}

type condition struct {
	Main string `json:"main"`
}

type currentConditions struct {
	Temp    float64     `json:"temp"`
	Weather []condition `json:"weather"`
}

type hourlyEntry struct {
	Dt      int64       `json:"dt"`
	Weather []condition `json:"weather"`
}

type oneCallResponse struct {
	Current json.RawMessage `json:"current"`
	Hourly  []hourlyEntry   `json:"hourly"`
	Daily   json.RawMessage `json:"daily"`
}

func (r oneCallResponse) snapshot() (weatherpro.WeatherSnapshot, error) {
	if len(r.Current) == 0 || string(r.Current) == "null" {
		return weatherpro.WeatherSnapshot{}, errMissingCurrent
	}
	var current currentConditions
	if err := json.Unmarshal(r.Current, &current); err != nil {
		return weatherpro.WeatherSnapshot{}, fmt.Errorf("decode current conditions: %w", err)
	}
	if len(current.Weather) == 0 {
		return weatherpro.WeatherSnapshot{}, errMissingCurrent
	}

	hourly := make([]weatherpro.HourlyEntry, 0, len(r.Hourly))
	for _, h := range r.Hourly {
		entry := weatherpro.HourlyEntry{Timestamp: h.Dt}
		if len(h.Weather) > 0 {
			entry.Condition = h.Weather[0].Main
		}
		hourly = append(hourly, entry)
	}

	return weatherpro.WeatherSnapshot{
		Condition:   current.Weather[0].Main,
		Temperature: current.Temp,
		Hourly:      hourly,
		Current:     r.Current,
		Daily:       r.Daily,
	}, nil
}
