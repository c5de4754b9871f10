// Package providers contains HTTP clients for upstream weather APIs.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/itsAasmaan/weather-app/internal/apperr"
	"github.com/itsAasmaan/weather-app/internal/weather"
)

// OpenWeatherClient fetches current and forecast data from an
// OpenWeatherMap-shaped API. It issues exactly one request per call; there is
// no retry, only a circuit breaker that stops hammering a failing upstream.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherClient creates a provider client. baseURL is the API root,
// e.g. https://api.openweathermap.org/data/2.5.
func NewOpenWeatherClient(client *http.Client, apiKey, baseURL string) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// FetchCurrent requests current conditions for the queried location.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, q weather.WeatherQuery) (*weather.CurrentPayload, error) {
	var payload weather.CurrentPayload
	if err := c.get(ctx, "/weather", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchForecast requests the 5-day/3-hour forecast for the queried location.
func (c *OpenWeatherClient) FetchForecast(ctx context.Context, q weather.WeatherQuery) (*weather.ForecastPayload, error) {
	var payload weather.ForecastPayload
	if err := c.get(ctx, "/forecast", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *OpenWeatherClient) get(ctx context.Context, path string, q weather.WeatherQuery, target any) error {
	if c.apiKey == "" {
		return fmt.Errorf("openweather API key is not configured")
	}

	values := url.Values{}
	values.Set("appid", c.apiKey)
	values.Set("units", q.Units.ProviderParam())
	if q.Coords != nil {
		values.Set("lat", strconv.FormatFloat(q.Coords.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(q.Coords.Lon, 'f', -1, 64))
	} else {
		values.Set("q", q.City)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	result, err := c.circuit.Execute(func() (any, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		// 5xx trips the breaker; 4xx is the caller's problem.
		if resp.StatusCode >= 500 {
			defer resp.Body.Close()
			return nil, &apperr.ProviderError{
				StatusCode: resp.StatusCode,
				Message:    decodeProviderMessage(resp),
			}
		}
		return resp, nil
	})
	if err != nil {
		return err
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperr.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    decodeProviderMessage(resp),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}

// decodeProviderMessage extracts the message field from an OpenWeatherMap
// error body, if any.
func decodeProviderMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
