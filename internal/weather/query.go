package weather

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/itsAasmaan/weather-app/internal/apperr"
	"github.com/itsAasmaan/weather-app/internal/common"
)

// Validation error codes surfaced by query parsing.
const (
	CodeMissingLocation       = "MISSING_LOCATION"
	CodeInvalidCoordinates    = "INVALID_COORDINATES"
	CodeInvalidLatitude       = "INVALID_LATITUDE"
	CodeInvalidLongitude      = "INVALID_LONGITUDE"
	CodeEmptyCity             = "EMPTY_CITY"
	CodeCityTooLong           = "CITY_TOO_LONG"
	CodeInvalidCharacters     = "INVALID_CHARACTERS"
	CodeInvalidUnits          = "INVALID_UNITS"
	CodeInvalidDays           = "INVALID_DAYS"
	CodeDaysOutOfRange        = "DAYS_OUT_OF_RANGE"
	CodeMissingCities         = "MISSING_CITIES"
	CodeNoValidCities         = "NO_VALID_CITIES"
	CodeTooManyCities         = "TOO_MANY_CITIES"
	CodeCityNameTooLong       = "CITY_NAME_TOO_LONG"
	CodeInvalidCityCharacters = "INVALID_CITY_CHARACTERS"
	CodeInvalidType           = "INVALID_TYPE"
)

const maxDays = 5

// WeatherQuery is a validated current-weather request. Exactly one of City or
// Coords is set. The struct tags are the authoritative constraints; parsing
// only resolves presence and numeric form before validate.Struct runs.
type WeatherQuery struct {
	City   string       `validate:"omitempty,max=100,city_chars"`
	Coords *Coordinates `validate:"omitempty"`
	Units  Units
}

// ForecastQuery is a validated forecast request.
type ForecastQuery struct {
	WeatherQuery
	Days int `validate:"min=1,max=5"`
}

// BulkType selects what a bulk search fetches per city.
type BulkType string

const (
	BulkCurrent  BulkType = "current"
	BulkForecast BulkType = "forecast"
)

// BulkQuery is a validated multi-city search request. Cities holds 1-10
// trimmed, non-empty names in request order.
type BulkQuery struct {
	Cities []string `validate:"max=10,dive,max=100,city_chars"`
	Type   BulkType
	Units  Units
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// City names must not smuggle markup into provider queries.
	if err := v.RegisterValidation("city_chars", func(fl validator.FieldLevel) bool {
		return !containsForbidden(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func containsForbidden(s string) bool {
	return common.HasAny(s, "<", ">") || common.HasAnyFold(s, "script")
}

// ParseWeatherQuery parses and validates raw query parameters into a
// WeatherQuery. Coordinates take precedence when both lat and lon are present.
func ParseWeatherQuery(raw map[string]string) (WeatherQuery, error) {
	var q WeatherQuery

	units, err := parseUnits(raw["units"])
	if err != nil {
		return q, err
	}
	q.Units = units

	latStr, lonStr, cityStr := raw["lat"], raw["lon"], raw["city"]

	switch {
	case latStr != "" && lonStr != "":
		coords, err := parseCoordinates(latStr, lonStr)
		if err != nil {
			return q, err
		}
		q.Coords = coords
	case cityStr == "":
		// Without a city, an incomplete coordinate pair is still a missing
		// location.
		return q, apperr.BadRequest(CodeMissingLocation,
			"Location parameter required", "Either city name or coordinates (lat, lon) must be provided")
	case latStr != "" || lonStr != "":
		return q, apperr.BadRequest(CodeInvalidCoordinates,
			"Invalid coordinates", "Latitude and longitude must both be provided as valid numbers")
	default:
		city := strings.TrimSpace(cityStr)
		if city == "" {
			return q, apperr.BadRequest(CodeEmptyCity,
				"City name cannot be empty", "Please provide a valid city name")
		}
		q.City = city
	}

	if err := validate.Struct(q); err != nil {
		return q, mapFieldErrors(err)
	}
	return q, nil
}

// ParseForecastQuery parses a forecast request: a weather query plus an
// optional days parameter in [1,5], defaulting to 5.
func ParseForecastQuery(raw map[string]string) (ForecastQuery, error) {
	var q ForecastQuery

	wq, err := ParseWeatherQuery(raw)
	if err != nil {
		return q, err
	}
	q.WeatherQuery = wq
	q.Days = maxDays

	if daysStr := raw["days"]; daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return q, apperr.BadRequest(CodeInvalidDays,
				"Invalid days parameter", "Days must be a valid number")
		}
		q.Days = days
	}

	if err := validate.Struct(q); err != nil {
		return q, mapFieldErrors(err)
	}
	return q, nil
}

// ParseBulkQuery parses a bulk search request: a comma-separated city list of
// up to 10 names, an optional type and optional units.
func ParseBulkQuery(raw map[string]string) (BulkQuery, error) {
	var q BulkQuery

	citiesStr := raw["cities"]
	if citiesStr == "" {
		return q, apperr.BadRequest(CodeMissingCities,
			"Cities parameter required", "Cities must be provided as a comma-separated string")
	}

	var cities []string
	for _, city := range strings.Split(citiesStr, ",") {
		if city = strings.TrimSpace(city); city != "" {
			cities = append(cities, city)
		}
	}
	if len(cities) == 0 {
		return q, apperr.BadRequest(CodeNoValidCities,
			"No valid cities provided", "At least one valid city name is required")
	}
	q.Cities = cities

	if err := validate.Struct(q); err != nil {
		return q, mapFieldErrors(err)
	}

	q.Type = BulkCurrent
	if typeStr := raw["type"]; typeStr != "" {
		switch BulkType(typeStr) {
		case BulkCurrent, BulkForecast:
			q.Type = BulkType(typeStr)
		default:
			return q, apperr.BadRequest(CodeInvalidType,
				"Invalid type parameter", `Type must be either "current" or "forecast"`)
		}
	}

	units, err := parseUnits(raw["units"])
	if err != nil {
		return q, err
	}
	q.Units = units

	return q, nil
}

func parseUnits(s string) (Units, error) {
	if s == "" {
		return UnitsMetric, nil
	}
	u := Units(s)
	if !u.valid() {
		return "", apperr.BadRequest(CodeInvalidUnits,
			"Invalid units parameter", "Units must be one of: metric, imperial, kelvin")
	}
	return u, nil
}

// parseCoordinates resolves the numeric form; range constraints live in the
// Coordinates struct tags. Non-finite values are rejected here because min/max
// comparisons against NaN never fail.
func parseCoordinates(latStr, lonStr string) (*Coordinates, error) {
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil || !isFinite(lat) || !isFinite(lon) {
		return nil, apperr.BadRequest(CodeInvalidCoordinates,
			"Invalid coordinates", "Latitude and longitude must be valid numbers")
	}
	return &Coordinates{Lat: lat, Lon: lon}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// mapFieldErrors converts validator tag failures into the coded errors the
// API contract names.
func mapFieldErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return apperr.BadRequest(apperr.CodeInvalidParameters, "Request validation failed", "")
	}

	fe := errs[0]
	switch field := fe.Field(); {
	case field == "City":
		if fe.Tag() == "city_chars" {
			return apperr.BadRequest(CodeInvalidCharacters,
				"Invalid characters in city name", "City name contains invalid characters")
		}
		return apperr.BadRequest(CodeCityTooLong,
			"City name too long", "City name must be less than 100 characters")
	case field == "Lat":
		return apperr.BadRequest(CodeInvalidLatitude,
			"Invalid latitude", "Latitude must be between -90 and 90 degrees")
	case field == "Lon":
		return apperr.BadRequest(CodeInvalidLongitude,
			"Invalid longitude", "Longitude must be between -180 and 180 degrees")
	case field == "Days":
		return apperr.BadRequest(CodeDaysOutOfRange,
			"Days parameter out of range", "Days must be between 1 and 5")
	case field == "Cities":
		return apperr.BadRequest(CodeTooManyCities,
			"Too many cities requested", "Maximum 10 cities allowed per bulk request")
	case strings.HasPrefix(field, "Cities["):
		city, _ := fe.Value().(string)
		if fe.Tag() == "city_chars" {
			return apperr.BadRequest(CodeInvalidCityCharacters,
				"Invalid characters in city name", fmt.Sprintf("City name %q contains invalid characters", city))
		}
		return apperr.BadRequest(CodeCityNameTooLong,
			"City name too long", fmt.Sprintf("City name %q exceeds 100 characters limit", city))
	}
	return apperr.BadRequest(apperr.CodeInvalidParameters, "Request validation failed", fe.Error())
}
