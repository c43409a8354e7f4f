package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weatherpro/internal/domain/geo"
	"github.com/yanqian/weatherpro/internal/domain/usage"
	"github.com/yanqian/weatherpro/internal/infra/config"
	"github.com/yanqian/weatherpro/internal/infra/geostore"
	"github.com/yanqian/weatherpro/internal/infra/llm"
	"github.com/yanqian/weatherpro/internal/infra/llm/chatgpt"
	"github.com/yanqian/weatherpro/internal/infra/llm/claude"
	"github.com/yanqian/weatherpro/internal/infra/llm/gemini"
	"github.com/yanqian/weatherpro/internal/infra/openweather"
	"github.com/yanqian/weatherpro/internal/infra/pixabay"
	"github.com/yanqian/weatherpro/internal/infra/usagerepo"
)

func provideGeoConfig(cfg *config.Config) geo.Config {
	return geo.Config{CacheTTL: cfg.GeoStore.CacheTTL}
}

func provideOpenWeatherClient(cfg *config.Config) *openweather.Client {
	return openweather.NewClient(openweather.Config{
		APIKey:         cfg.Upstream.OpenWeatherKey,
		GeoBaseURL:     cfg.Upstream.GeoBaseURL,
		WeatherBaseURL: cfg.Upstream.WeatherBaseURL,
		Timeout:        cfg.Upstream.Timeout,
	})
}

func providePixabayClient(cfg *config.Config) *pixabay.Client {
	return pixabay.NewClient(cfg.Upstream.PixabayKey, cfg.Upstream.PixabayBaseURL, cfg.Upstream.Timeout)
}

// provideGenerators builds one adapter per configured provider in fallback
// order. Providers without a key are skipped.
func provideGenerators(ctx context.Context, cfg *config.Config, logger *slog.Logger) []llm.Generator {
	var generators []llm.Generator
	for _, name := range cfg.LLM.ProviderOrder {
		var (
			gen llm.Generator
			err error
		)
		switch strings.ToLower(name) {
		case "gemini":
			p := cfg.LLM.Gemini
			if p.APIKey == "" {
				continue
			}
			gen, err = gemini.NewClient(ctx, p.APIKey, p.Model, p.BaseURL, cfg.LLM.Temperature)
		case "openai":
			p := cfg.LLM.OpenAI
			if p.APIKey == "" {
				continue
			}
			gen, err = chatgpt.NewClient(p.APIKey, p.Model, p.BaseURL, cfg.LLM.Temperature)
		case "anthropic":
			p := cfg.LLM.Anthropic
			if p.APIKey == "" {
				continue
			}
			gen, err = claude.NewClient(p.APIKey, p.Model, p.BaseURL, cfg.LLM.Temperature)
		default:
			continue
		}
		if err != nil {
			logger.Error("model provider init failed", "provider", name, "error", err)
			continue
		}
		logger.Info("model provider enabled", "provider", gen.ProviderName(), "model", gen.ModelName())
		generators = append(generators, gen)
	}
	if len(generators) == 0 {
		logger.Warn("no model provider configured; AI features are unavailable")
	}
	return generators
}

func provideLanguageModel(cfg *config.Config, generators []llm.Generator, recorder usage.Service, logger *slog.Logger) *llm.Model {
	return llm.NewModel(generators, cfg.LLM.RatePerMinute, recorder, logger)
}

func provideUsageRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (usage.Repository, func()) {
	fallback := usagerepo.NewMemoryRepository()
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Usage.Postgres.DSN)
	if dsn == "" {
		logger.Info("usage postgres dsn not set, using memory repository")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, noop
	}
	if cfg.Usage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Usage.Postgres.MaxConns
	}
	if cfg.Usage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Usage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, noop
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	repo := usagerepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(pingCtx); err != nil {
		logger.Error("usage schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("usage postgres repository enabled")
	return repo, pool.Close
}

func provideGeoStore(cfg *config.Config, logger *slog.Logger) (geo.Store, func()) {
	noop := func() {}
	if !cfg.GeoStore.Redis.Enabled {
		return geostore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.GeoStore.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return geostore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return geostore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return geostore.NewMemoryStore(), noop
	}
	logger.Info("geo valkey store enabled", "addr", cfg.GeoStore.Redis.Addr)
	return geostore.NewValkeyStore(client, cfg.GeoStore.Redis.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
