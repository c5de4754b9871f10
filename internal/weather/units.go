package weather

// Units selects the measurement system for temperature and wind speed.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsKelvin   Units = "kelvin"
)

// valid reports whether u is one of the supported unit systems.
func (u Units) valid() bool {
	switch u {
	case UnitsMetric, UnitsImperial, UnitsKelvin:
		return true
	}
	return false
}

// ProviderParam returns the units value the provider expects. OpenWeatherMap
// calls Kelvin "standard".
func (u Units) ProviderParam() string {
	if u == UnitsKelvin {
		return "standard"
	}
	return string(u)
}

// The service forwards the requested units to the provider, which converts
// exactly once. These helpers are the only conversion code in the repository.

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a Fahrenheit temperature to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// CelsiusToKelvin converts a Celsius temperature to Kelvin.
func CelsiusToKelvin(c float64) float64 {
	return c + 273.15
}

// KelvinToCelsius converts a Kelvin temperature to Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}
