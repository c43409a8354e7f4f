package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/weatherpro/pkg/errors"
)

func TestDirectSendsQueryAndDecodesPlaces(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[{"name":"London","lat":51.5,"lon":-0.12,"country":"GB","state":"England"}]`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", GeoBaseURL: srv.URL + "/"})
	places, err := client.Direct(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, places, 1)
	require.Equal(t, "England", places[0].State)

	require.Equal(t, "/direct", got.URL.Path)
	require.Equal(t, "London", got.URL.Query().Get("q"))
	require.Equal(t, "1", got.URL.Query().Get("limit"))
	require.Equal(t, "k", got.URL.Query().Get("appid"))
}

func TestReverseEmptyResult(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", GeoBaseURL: srv.URL})
	places, err := client.Reverse(context.Background(), 12.5, -3)
	require.NoError(t, err)
	require.Empty(t, places)
	require.Equal(t, "/reverse", got.URL.Path)
	require.Equal(t, "12.5", got.URL.Query().Get("lat"))
	require.Equal(t, "-3", got.URL.Query().Get("lon"))
}

func TestOneCallBuildsSnapshot(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{
			"current": {"temp": 21.4, "weather": [{"main": "Clouds"}]},
			"hourly": [{"dt": 1, "weather": [{"main": "Rain"}]}, {"dt": 2, "weather": []}],
			"daily": [{"dt": 10}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", WeatherBaseURL: srv.URL})
	snap, err := client.OneCall(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, "/onecall", got.URL.Path)
	require.Equal(t, "metric", got.URL.Query().Get("units"))
	require.Equal(t, "minutely", got.URL.Query().Get("exclude"))
	require.Equal(t, "Clouds", snap.Condition)
	require.Equal(t, 21.4, snap.Temperature)
	require.Len(t, snap.Hourly, 2)
	require.Equal(t, "Rain", snap.Hourly[0].Condition)
	require.Empty(t, snap.Hourly[1].Condition)
	require.JSONEq(t, `{"temp": 21.4, "weather": [{"main": "Clouds"}]}`, string(snap.Current))
	require.JSONEq(t, `[{"dt": 10}]`, string(snap.Daily))
}

func TestOneCallRejectsMissingCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"current": {"temp": 3, "weather": []}}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{APIKey: "k", WeatherBaseURL: srv.URL}).OneCall(context.Background(), 0, 0)
	require.ErrorIs(t, err, errMissingCurrent)
}

func TestNonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{APIKey: "bad", WeatherBaseURL: srv.URL}).OneCall(context.Background(), 0, 0)
	require.ErrorContains(t, err, "status=401")
}

func TestMissingKeyIsConfigError(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Direct(context.Background(), "Paris")
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfig))
	require.Equal(t, "OPENWEATHER_API_KEY environment variable not set.", apperrors.MessageOf(err))

	_, err = client.OneCall(context.Background(), 1, 1)
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfig))
}
