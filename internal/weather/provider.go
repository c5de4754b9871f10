package weather

import "context"

// Provider abstracts the upstream weather data source. Implementations return
// raw provider payloads; interpretation of failures is left to the caller.
type Provider interface {
	FetchCurrent(ctx context.Context, q WeatherQuery) (*CurrentPayload, error)
	FetchForecast(ctx context.Context, q WeatherQuery) (*ForecastPayload, error)
}
