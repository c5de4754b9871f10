// Package apperr defines the application error taxonomy and the classifier
// that maps validation, provider and network failures onto it.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"

	"github.com/itsAasmaan/weather-app/internal/common"
)

// Application error codes returned in the response envelope.
const (
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodeLocationNotFound   = "LOCATION_NOT_FOUND"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeGatewayTimeout     = "GATEWAY_TIMEOUT"
	CodeInvalidParameters  = "INVALID_PARAMETERS"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeBulkSearchFailed   = "BULK_SEARCH_FAILED"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
)

// Error is a classified application error. Status is the HTTP status to
// respond with; it is not serialized into the envelope body.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a classified application error.
func New(status int, code, message, details string) *Error {
	return &Error{Status: status, Code: code, Message: message, Details: details}
}

// BadRequest creates a 400 validation error with a field-specific code.
func BadRequest(code, message, details string) *Error {
	return New(fiber.StatusBadRequest, code, message, details)
}

// ProviderError carries a non-2xx response from the weather provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather provider returned status %d", e.StatusCode)
	}
	return e.Message
}

// validationKeywords is the heuristic used to recognize uncoded validation
// failures by message content.
var validationKeywords = []string{
	"must be", "required", "invalid", "between", "maximum", "minimum",
	"either", "should", "cannot", "exceeds", "less than", "greater than",
}

// Classify maps any failure from the request pipeline to an *Error with a
// fixed precedence: typed errors pass through, then timeouts, then other
// network failures, then provider statuses, then the validation-keyword
// heuristic, then a generic 500. In production the 500 message is redacted.
func Classify(err error, production bool) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if isTimeout(err) {
		return New(fiber.StatusGatewayTimeout, CodeGatewayTimeout,
			"Request timeout", "The weather provider took too long to respond")
	}
	if isNetworkFailure(err) {
		return New(fiber.StatusServiceUnavailable, CodeServiceUnavailable,
			"Weather service is currently unavailable", "")
	}

	msg := err.Error()

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		switch {
		case provErr.StatusCode == fiber.StatusUnauthorized:
			return New(fiber.StatusUnauthorized, CodeInvalidAPIKey, "Invalid API key", "")
		case provErr.StatusCode == fiber.StatusNotFound:
			return New(fiber.StatusNotFound, CodeLocationNotFound, "Location not found", "")
		case provErr.StatusCode == fiber.StatusTooManyRequests:
			return New(fiber.StatusTooManyRequests, CodeRateLimitExceeded, "API rate limit exceeded", "")
		case provErr.StatusCode >= 500:
			return New(fiber.StatusServiceUnavailable, CodeServiceUnavailable,
				"Weather service is currently unavailable", msg)
		}
	}

	switch {
	case common.HasAnyFold(msg, "api key"):
		return New(fiber.StatusUnauthorized, CodeInvalidAPIKey, "Invalid API key", "")
	case common.HasAnyFold(msg, "not found"):
		return New(fiber.StatusNotFound, CodeLocationNotFound, "Location not found", "")
	case common.HasAnyFold(msg, "rate limit"):
		return New(fiber.StatusTooManyRequests, CodeRateLimitExceeded, "API rate limit exceeded", "")
	case common.HasAnyFold(msg, validationKeywords...):
		return New(fiber.StatusBadRequest, CodeInvalidParameters, msg, "")
	}

	if production {
		return New(fiber.StatusInternalServerError, CodeInternalError,
			"An unexpected error occurred", "")
	}
	return New(fiber.StatusInternalServerError, CodeInternalError, msg, "")
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isNetworkFailure reports whether err is a transport-level failure that never
// produced an HTTP response (DNS failure, refused connection, dead circuit).
func isNetworkFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
