package httpapi

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/itsAasmaan/weather-app/internal/apperr"
	"github.com/itsAasmaan/weather-app/internal/config"
	"github.com/itsAasmaan/weather-app/internal/weather"
)

// Stricter fixed-window limits for the heavier endpoints, on top of the
// app-level general limiter.
const (
	strictLimitMax = 50
	bulkLimitMax   = 20
)

type handlers struct {
	service *weather.Service
	cfg     *config.AppConfig
}

// RegisterRoutes wires the weather endpoints into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, cfg *config.AppConfig) {
	h := &handlers{service: service, cfg: cfg}

	api := app.Group("/api")
	api.Get("/", h.info)

	w := api.Group("/weather")
	w.Get("/current", h.current)
	w.Get("/forecast", RateLimiter(strictLimitMax, cfg.RateLimitWindow), h.forecast)
	w.Get("/search", RateLimiter(bulkLimitMax, cfg.RateLimitWindow), h.search)
}

func (h *handlers) current(c *fiber.Ctx) error {
	start := time.Now()

	q, err := weather.ParseWeatherQuery(c.Queries())
	if err != nil {
		return h.fail(c, err, start)
	}

	data, err := h.service.GetCurrent(c.Context(), q)
	if err != nil {
		return h.fail(c, err, start)
	}
	return respondSuccess(c, data, start)
}

func (h *handlers) forecast(c *fiber.Ctx) error {
	start := time.Now()

	q, err := weather.ParseForecastQuery(c.Queries())
	if err != nil {
		return h.fail(c, err, start)
	}

	data, err := h.service.GetForecast(c.Context(), q)
	if err != nil {
		return h.fail(c, err, start)
	}
	return respondSuccess(c, data, start)
}

func (h *handlers) search(c *fiber.Ctx) error {
	start := time.Now()

	q, err := weather.ParseBulkQuery(c.Queries())
	if err != nil {
		return h.fail(c, err, start)
	}

	result := h.service.Search(c.Context(), q)
	if result.Summary.Successful == 0 {
		// Envelope invariant: no data on failure. The per-city errors ride
		// along in details; the status comes from the first failure.
		classified := apperr.Classify(result.FirstError(), h.cfg.IsProduction())
		return respondError(c, apperr.New(classified.Status, apperr.CodeBulkSearchFailed,
			"Weather lookup failed for all requested cities", classified.Message), start)
	}
	return respondSuccess(c, result, start)
}

func (h *handlers) fail(c *fiber.Ctx, err error, start time.Time) error {
	appErr := apperr.Classify(err, h.cfg.IsProduction())
	if appErr.Status >= fiber.StatusInternalServerError {
		log.Printf("weather handler error: %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return respondError(c, appErr, start)
}

// info describes the API surface, mirroring what clients discover at /api.
func (h *handlers) info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "Weather API v1.0.0",
		"status":    "active",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": fiber.Map{
			"weather": fiber.Map{
				"current":  "GET /api/weather/current",
				"forecast": "GET /api/weather/forecast",
				"search":   "GET /api/weather/search",
			},
		},
		"documentation": fiber.Map{
			"current": fiber.Map{
				"description": "Get current weather for a location",
				"parameters": fiber.Map{
					"required": "city (string) OR lat,lon (numbers)",
					"optional": "units (metric|imperial|kelvin)",
				},
			},
			"forecast": fiber.Map{
				"description": "Get weather forecast for a location",
				"parameters": fiber.Map{
					"required": "city (string) OR lat,lon (numbers)",
					"optional": "days (1-5), units (metric|imperial|kelvin)",
				},
			},
			"search": fiber.Map{
				"description": "Get weather for up to 10 cities at once",
				"parameters": fiber.Map{
					"required": "cities (comma-separated, max 10)",
					"optional": "type (current|forecast), units (metric|imperial|kelvin)",
				},
			},
		},
	})
}

// RateLimiter builds a fixed-window inbound limiter whose 429 responses use
// the standard envelope with rate-limit metadata.
func RateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			resetTime := time.Now().Add(window).UTC().Format(time.RFC3339)
			return c.Status(fiber.StatusTooManyRequests).JSON(Envelope{
				Success: false,
				Error: apperr.New(fiber.StatusTooManyRequests, apperr.CodeRateLimitExceeded,
					"Too many requests. Please try again later.",
					"Rate limit exceeded. Try again after "+resetTime),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Meta: Meta{
					RequestID: requestID(c),
					RateLimit: &RateLimitInfo{Remaining: 0, ResetTime: resetTime},
				},
			})
		},
	})
}

// NewErrorHandler returns the centralized fiber error handler. Anything that
// escapes a handler is classified and written in the standard envelope.
func NewErrorHandler(cfg *config.AppConfig) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return respondError(c, apperr.Classify(err, cfg.IsProduction()), time.Now())
	}
}

// NotFoundHandler is the envelope-shaped fallback for unknown routes.
func NotFoundHandler(c *fiber.Ctx) error {
	return respondError(c, apperr.New(fiber.StatusNotFound, apperr.CodeRouteNotFound,
		"Endpoint not found",
		"The requested endpoint "+c.Method()+" "+c.OriginalURL()+" does not exist"), time.Now())
}
