package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itsAasmaan/weather-app/internal/apperr"
	"github.com/itsAasmaan/weather-app/internal/weather"
)

func newTestClient(handler http.HandlerFunc) (*OpenWeatherClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewOpenWeatherClient(srv.Client(), "test-key", srv.URL)
	return client, srv
}

func TestFetchCurrentParams(t *testing.T) {
	var gotQuery map[string]string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
			"q":     r.URL.Query().Get("q"),
		}
		if r.URL.Path != "/weather" {
			t.Errorf("expected path /weather, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"name":"London","main":{"temp":15}}`))
	})
	defer srv.Close()

	q := weather.WeatherQuery{City: "London", Units: weather.UnitsKelvin}
	payload, err := client.FetchCurrent(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "London" {
		t.Errorf("expected payload name London, got %q", payload.Name)
	}
	if gotQuery["appid"] != "test-key" {
		t.Errorf("expected appid to be forwarded, got %q", gotQuery["appid"])
	}
	if gotQuery["units"] != "standard" {
		t.Errorf("expected kelvin mapped to standard, got %q", gotQuery["units"])
	}
	if gotQuery["q"] != "London" {
		t.Errorf("expected q=London, got %q", gotQuery["q"])
	}
}

func TestFetchForecastCoordinates(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("expected path /forecast, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") != "51.5" || r.URL.Query().Get("lon") != "-0.12" {
			t.Errorf("unexpected coordinates: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("q") != "" {
			t.Error("expected no q parameter when coordinates are set")
		}
		w.Write([]byte(`{"list":[],"city":{"name":"London"}}`))
	})
	defer srv.Close()

	q := weather.WeatherQuery{
		Coords: &weather.Coordinates{Lat: 51.5, Lon: -0.12},
		Units:  weather.UnitsMetric,
	}
	if _, err := client.FetchForecast(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchCurrentProviderError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})
	defer srv.Close()

	_, err := client.FetchCurrent(context.Background(), weather.WeatherQuery{City: "Atlantis"})
	var provErr *apperr.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *apperr.ProviderError, got %T (%v)", err, err)
	}
	if provErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", provErr.StatusCode)
	}
	if provErr.Message != "city not found" {
		t.Errorf("expected provider message extracted, got %q", provErr.Message)
	}
}

func TestFetchCurrentServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.FetchCurrent(context.Background(), weather.WeatherQuery{City: "London"})
	var provErr *apperr.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *apperr.ProviderError, got %T (%v)", err, err)
	}
	if provErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", provErr.StatusCode)
	}
}

func TestFetchCurrentWithoutAPIKey(t *testing.T) {
	client := NewOpenWeatherClient(&http.Client{Timeout: time.Second}, "", "http://localhost:0")
	if _, err := client.FetchCurrent(context.Background(), weather.WeatherQuery{City: "London"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestFetchCurrentNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewOpenWeatherClient(&http.Client{Timeout: time.Second}, "test-key", srv.URL)
	_, err := client.FetchCurrent(context.Background(), weather.WeatherQuery{City: "London"})
	if err == nil {
		t.Fatal("expected network error")
	}
	var provErr *apperr.ProviderError
	if errors.As(err, &provErr) {
		t.Errorf("network failure must propagate raw, got provider error %+v", provErr)
	}
}
