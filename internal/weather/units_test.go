package weather

import "testing"

func TestProviderParam(t *testing.T) {
	tests := []struct {
		units Units
		want  string
	}{
		{UnitsMetric, "metric"},
		{UnitsImperial, "imperial"},
		// OpenWeatherMap calls Kelvin "standard".
		{UnitsKelvin, "standard"},
	}
	for _, tt := range tests {
		if got := tt.units.ProviderParam(); got != tt.want {
			t.Errorf("%s: expected provider param %q, got %q", tt.units, tt.want, got)
		}
	}
}

func TestTemperatureConversions(t *testing.T) {
	if got := CelsiusToFahrenheit(15); got != 59 {
		t.Errorf("15C: expected 59F, got %v", got)
	}
	if got := CelsiusToFahrenheit(-40); got != -40 {
		t.Errorf("-40C: expected -40F, got %v", got)
	}
	if got := FahrenheitToCelsius(212); got != 100 {
		t.Errorf("212F: expected 100C, got %v", got)
	}
	if got := CelsiusToKelvin(0); got != 273.15 {
		t.Errorf("0C: expected 273.15K, got %v", got)
	}
	if got := KelvinToCelsius(273.15); got != 0 {
		t.Errorf("273.15K: expected 0C, got %v", got)
	}
}
