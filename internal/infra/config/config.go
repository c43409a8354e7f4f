package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Upstream UpstreamConfig `yaml:"upstream"`
	LLM      LLMConfig      `yaml:"llm"`
	GeoStore GeoStoreConfig `yaml:"geoStore"`
	Usage    UsageConfig    `yaml:"usage"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// UpstreamConfig holds the third-party REST endpoints and their credentials.
// Credentials may be empty: callers report the gap when they are first used.
type UpstreamConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	OpenWeatherKey string        `yaml:"openWeatherKey"`
	GeoBaseURL     string        `yaml:"geoBaseUrl"`
	WeatherBaseURL string        `yaml:"weatherBaseUrl"`
	PixabayKey     string        `yaml:"pixabayKey"`
	PixabayBaseURL string        `yaml:"pixabayBaseUrl"`
}

// LLMConfig lists the generative model providers in fallback order. A zero
// Temperature leaves sampling at each provider's default.
type LLMConfig struct {
	ProviderOrder []string       `yaml:"providerOrder"`
	RatePerMinute int            `yaml:"ratePerMinute"`
	Temperature   float32        `yaml:"temperature"`
	Gemini        ProviderConfig `yaml:"gemini"`
	OpenAI        ProviderConfig `yaml:"openai"`
	Anthropic     ProviderConfig `yaml:"anthropic"`
}

// ProviderConfig contains one model provider's settings.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseUrl"`
}

// GeoStoreConfig controls forward-geocode caching and trending counters.
type GeoStoreConfig struct {
	CacheTTL time.Duration `yaml:"cacheTtl"`
	Redis    RedisConfig   `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// UsageConfig controls where model call records are kept.
type UsageConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file, a .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(os.Getenv("DOTENV_PATH")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv populates unset environment variables from a .env file. A missing
// default file is fine; an explicitly named one must exist.
func loadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = parsed
		}
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Upstream.OpenWeatherKey = v
	}
	if v := os.Getenv("OPENWEATHER_GEO_BASE_URL"); v != "" {
		cfg.Upstream.GeoBaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_DATA_BASE_URL"); v != "" {
		cfg.Upstream.WeatherBaseURL = v
	}
	if v := os.Getenv("PIXABAY_API_KEY"); v != "" {
		cfg.Upstream.PixabayKey = v
	}
	if v := os.Getenv("PIXABAY_BASE_URL"); v != "" {
		cfg.Upstream.PixabayBaseURL = v
	}
	if v := os.Getenv("LLM_PROVIDER_ORDER"); v != "" {
		cfg.LLM.ProviderOrder = splitList(v)
	}
	if v := os.Getenv("LLM_RATE_PER_MINUTE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.RatePerMinute = parsed
		}
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.LLM.Gemini.Model = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.LLM.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.OpenAI.BaseURL = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.LLM.Anthropic.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		cfg.LLM.Anthropic.Model = v
	}
	if v := os.Getenv("GEO_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.GeoStore.CacheTTL = parsed
		}
	}
	if v := os.Getenv("GEO_REDIS_ENABLED"); v != "" {
		cfg.GeoStore.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("GEO_REDIS_ADDR"); v != "" {
		cfg.GeoStore.Redis.Addr = v
	}
	if v := os.Getenv("USAGE_POSTGRES_DSN"); v != "" {
		cfg.Usage.Postgres.DSN = v
	}
	if v := os.Getenv("USAGE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Usage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("USAGE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Usage.Postgres.MinConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":5000",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   90 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Upstream: UpstreamConfig{
			Timeout:        10 * time.Second,
			GeoBaseURL:     "http://api.openweathermap.org/geo/1.0",
			WeatherBaseURL: "https://api.openweathermap.org/data/3.0",
			PixabayBaseURL: "https://pixabay.com/api",
		},
		LLM: LLMConfig{
			ProviderOrder: []string{"gemini", "openai", "anthropic"},
			RatePerMinute: 0,
			Temperature:   0,
			Gemini:        ProviderConfig{Model: "gemini-2.5-flash"},
			OpenAI:        ProviderConfig{Model: "gpt-4o-mini"},
			Anthropic:     ProviderConfig{Model: "claude-sonnet-4-5-20250929"},
		},
		GeoStore: GeoStoreConfig{
			CacheTTL: 24 * time.Hour,
			Redis: RedisConfig{
				Enabled: false,
				Prefix:  "geo",
			},
		},
		Usage: UsageConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

var knownProviders = map[string]struct{}{
	"gemini":    {},
	"openai":    {},
	"anthropic": {},
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Upstream.Timeout < 0 {
		return errors.New("upstream.timeout cannot be negative")
	}
	if strings.TrimSpace(c.Upstream.GeoBaseURL) == "" {
		return errors.New("upstream.geoBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Upstream.WeatherBaseURL) == "" {
		return errors.New("upstream.weatherBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Upstream.PixabayBaseURL) == "" {
		return errors.New("upstream.pixabayBaseUrl cannot be empty")
	}
	for _, name := range c.LLM.ProviderOrder {
		if _, ok := knownProviders[strings.ToLower(name)]; !ok {
			return fmt.Errorf("llm.providerOrder: unknown provider %q", name)
		}
	}
	if c.LLM.RatePerMinute < 0 {
		return errors.New("llm.ratePerMinute cannot be negative")
	}
	if c.GeoStore.CacheTTL < 0 {
		return errors.New("geoStore.cacheTtl cannot be negative")
	}
	if c.GeoStore.Redis.Enabled && strings.TrimSpace(c.GeoStore.Redis.Addr) == "" {
		return errors.New("geoStore.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.Usage.Postgres.MinConns > c.Usage.Postgres.MaxConns && c.Usage.Postgres.MaxConns > 0 {
		return errors.New("usage.postgres.minConns cannot exceed maxConns")
	}
	return nil
}
