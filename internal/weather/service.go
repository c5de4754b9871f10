package weather

import (
	"context"
	"log"
	"sync"
)

// Service orchestrates the per-request pipeline: validated query in,
// normalized weather data out. It holds no state beyond its provider.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// GetCurrent fetches and normalizes current conditions.
func (s *Service) GetCurrent(ctx context.Context, q WeatherQuery) (WeatherData, error) {
	payload, err := s.provider.FetchCurrent(ctx, q)
	if err != nil {
		return WeatherData{}, err
	}
	return TransformCurrent(payload), nil
}

// GetForecast fetches the 3-hourly forecast and aggregates it into daily
// buckets.
func (s *Service) GetForecast(ctx context.Context, q ForecastQuery) (ForecastData, error) {
	payload, err := s.provider.FetchForecast(ctx, q.WeatherQuery)
	if err != nil {
		return ForecastData{}, err
	}
	return TransformForecast(payload, q.Days), nil
}

// CityResult is one successful bulk-search entry.
type CityResult struct {
	City string `json:"city"`
	Data any    `json:"data"`
}

// CityFailure is one failed bulk-search entry.
type CityFailure struct {
	City  string `json:"city"`
	Error string `json:"error"`
}

// BulkSummary counts bulk-search outcomes.
type BulkSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BulkResult groups bulk-search outcomes. Successful and Failed preserve the
// request order of their cities.
type BulkResult struct {
	Successful []CityResult  `json:"successful"`
	Failed     []CityFailure `json:"failed"`
	Summary    BulkSummary   `json:"summary"`

	// underlying per-city errors in request order, kept for classification
	// when every city fails
	errs []error
}

// FirstError returns the error of the first failed city, or nil.
func (r BulkResult) FirstError() error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[0]
}

// Search fetches weather for each city concurrently. A city's failure is
// recorded, not propagated, and does not cancel its siblings.
func (s *Service) Search(ctx context.Context, q BulkQuery) BulkResult {
	type outcome struct {
		data any
		err  error
	}

	outcomes := make([]outcome, len(q.Cities))

	var wg sync.WaitGroup
	for i, city := range q.Cities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()

			cityQuery := WeatherQuery{City: city, Units: q.Units}
			var (
				data any
				err  error
			)
			if q.Type == BulkForecast {
				data, err = s.GetForecast(ctx, ForecastQuery{WeatherQuery: cityQuery, Days: maxDays})
			} else {
				data, err = s.GetCurrent(ctx, cityQuery)
			}
			if err != nil {
				log.Printf("bulk search: fetch failed for %q: %v", city, err)
			}
			outcomes[i] = outcome{data: data, err: err}
		}(i, city)
	}
	wg.Wait()

	result := BulkResult{
		Successful: make([]CityResult, 0, len(q.Cities)),
		Failed:     make([]CityFailure, 0),
	}
	for i, city := range q.Cities {
		if outcomes[i].err != nil {
			result.Failed = append(result.Failed, CityFailure{City: city, Error: outcomes[i].err.Error()})
			result.errs = append(result.errs, outcomes[i].err)
			continue
		}
		result.Successful = append(result.Successful, CityResult{City: city, Data: outcomes[i].data})
	}
	result.Summary = BulkSummary{
		Total:      len(q.Cities),
		Successful: len(result.Successful),
		Failed:     len(result.Failed),
	}
	return result
}
