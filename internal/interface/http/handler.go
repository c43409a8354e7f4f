package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherpro/internal/domain/chat"
	"github.com/yanqian/weatherpro/internal/domain/geo"
	"github.com/yanqian/weatherpro/internal/domain/usage"
	"github.com/yanqian/weatherpro/internal/domain/weatherpro"
)

// ReadinessChecker reports whether the language model can serve requests.
type ReadinessChecker interface {
	Ready() error
	Providers() []string
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	geoSvc     geo.Service
	weatherSvc weatherpro.Service
	chatSvc    chat.Service
	usageSvc   usage.Service
	model      ReadinessChecker
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(geoSvc geo.Service, weatherSvc weatherpro.Service, chatSvc chat.Service, usageSvc usage.Service, model ReadinessChecker, logger *slog.Logger) *Handler {
	return &Handler{
		geoSvc:     geoSvc,
		weatherSvc: weatherSvc,
		chatSvc:    chatSvc,
		usageSvc:   usageSvc,
		model:      model,
		logger:     logger.With("component", "http.handler"),
	}
}

// Geocode resolves ?q= to the first matching place.
func (h *Handler) Geocode(c *gin.Context) {
	place, err := h.geoSvc.Geocode(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, place)
}

// WeatherPro returns weather plus AI recommendations for ?lat=&lon=.
func (h *Handler) WeatherPro(c *gin.Context) {
	resp, err := h.weatherSvc.Compose(c.Request.Context(), weatherpro.Request{
		Lat: c.Query("lat"),
		Lon: c.Query("lon"),
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Chat relays one message to the assistant.
func (h *Handler) Chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "Message is required", err))
		return
	}

	resp, err := h.chatSvc.Reply(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TrendingCities lists the most geocoded cities.
func (h *Handler) TrendingCities(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}

	items, err := h.geoSvc.Trending(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": items})
}

// Usage summarizes recorded model calls.
func (h *Handler) Usage(c *gin.Context) {
	summary, err := h.usageSvc.Summary(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", "failed to load usage", err))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Health reports liveness and model availability.
func (h *Handler) Health(c *gin.Context) {
	model := "ready"
	if err := h.model.Ready(); err != nil {
		model = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": model, "providers": h.model.Providers()})
}
