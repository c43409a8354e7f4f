package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherpro/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/", handler.Index)
	router.GET("/healthz", handler.Health)
	router.GET("/geocode", handler.Geocode)
	router.GET("/get-weather-pro-data", handler.WeatherPro)
	router.POST("/chat", handler.Chat)

	api := router.Group("/api/v1")
	{
		api.GET("/cities/trending", handler.TrendingCities)
		api.GET("/usage", handler.Usage)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
