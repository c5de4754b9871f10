package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/itsAasmaan/weather-app/internal/apperr"
)

// Envelope is the uniform response shape for every endpoint, success or
// failure. Success is true exactly when Data is present and Error absent.
type Envelope struct {
	Success   bool          `json:"success"`
	Data      any           `json:"data,omitempty"`
	Error     *apperr.Error `json:"error,omitempty"`
	Timestamp string        `json:"timestamp"`
	Meta      Meta          `json:"meta"`
}

// Meta carries per-request bookkeeping.
type Meta struct {
	RequestID    string         `json:"requestId"`
	ResponseTime int64          `json:"responseTime"`
	RateLimit    *RateLimitInfo `json:"rateLimit,omitempty"`
}

// RateLimitInfo is attached to 429 responses from the inbound limiter.
type RateLimitInfo struct {
	Remaining int    `json:"remaining"`
	ResetTime string `json:"resetTime"`
}

// NewRequestID generates a fresh request identifier.
func NewRequestID() string {
	return "req_" + uuid.NewString()
}

// requestID returns the ID assigned by the requestid middleware, generating
// one for responses written outside the middleware chain.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		return id
	}
	return NewRequestID()
}

func respondSuccess(c *fiber.Ctx, data any, start time.Time) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Meta: Meta{
			RequestID:    requestID(c),
			ResponseTime: time.Since(start).Milliseconds(),
		},
	})
}

func respondError(c *fiber.Ctx, appErr *apperr.Error, start time.Time) error {
	return c.Status(appErr.Status).JSON(Envelope{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Meta: Meta{
			RequestID:    requestID(c),
			ResponseTime: time.Since(start).Milliseconds(),
		},
	})
}
