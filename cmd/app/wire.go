//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/yanqian/weatherpro/internal/bootstrap"
	"github.com/yanqian/weatherpro/internal/domain/chat"
	"github.com/yanqian/weatherpro/internal/domain/geo"
	"github.com/yanqian/weatherpro/internal/domain/usage"
	"github.com/yanqian/weatherpro/internal/domain/weatherpro"
	"github.com/yanqian/weatherpro/internal/infra/config"
	"github.com/yanqian/weatherpro/internal/infra/llm"
	"github.com/yanqian/weatherpro/internal/infra/openweather"
	"github.com/yanqian/weatherpro/internal/infra/pixabay"
	httpiface "github.com/yanqian/weatherpro/internal/interface/http"
	"github.com/yanqian/weatherpro/pkg/logger"
)

func initializeApp(ctx context.Context) (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeoConfig,
		provideOpenWeatherClient,
		providePixabayClient,
		provideGeoStore,
		provideUsageRepository,
		provideGenerators,
		provideLanguageModel,
		usage.NewService,
		geo.NewService,
		weatherpro.NewService,
		chat.NewService,
		wire.Bind(new(geo.Geocoder), new(*openweather.Client)),
		wire.Bind(new(weatherpro.WeatherClient), new(*openweather.Client)),
		wire.Bind(new(weatherpro.ReverseGeocoder), new(*openweather.Client)),
		wire.Bind(new(weatherpro.ImageSearcher), new(*pixabay.Client)),
		wire.Bind(new(weatherpro.Model), new(*llm.Model)),
		wire.Bind(new(chat.Model), new(*llm.Model)),
		wire.Bind(new(httpiface.ReadinessChecker), new(*llm.Model)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
