package weather

import (
	"math"
	"strings"
	"time"
)

// Defaults used when the provider omits the weather condition array.
const (
	defaultCondition   = "Unknown"
	defaultDescription = "No description"
	defaultIcon        = "01d"
)

// TransformCurrent maps a provider current-weather payload into the canonical
// WeatherData shape. Temperatures are rounded to the nearest integer; sunrise
// and sunset are converted from epoch seconds to RFC3339 UTC.
func TransformCurrent(p *CurrentPayload) WeatherData {
	cond, desc, icon := conditionOf(p.Weather)

	return WeatherData{
		Location: Location{
			Name:        p.Name,
			Country:     p.Sys.Country,
			Coordinates: p.Coord,
		},
		Current: CurrentConditions{
			Temperature:   roundInt(p.Main.Temp),
			FeelsLike:     roundInt(p.Main.FeelsLike),
			Humidity:      roundInt(p.Main.Humidity),
			Pressure:      roundInt(p.Main.Pressure),
			WindSpeed:     p.Wind.Speed,
			WindDirection: roundInt(p.Wind.Deg),
			Visibility:    p.Visibility,
			Cloudiness:    roundInt(p.Clouds.All),
			Condition:     cond,
			Description:   desc,
			Icon:          icon,
		},
		Sun: Sun{
			Sunrise: time.Unix(p.Sys.Sunrise, 0).UTC().Format(time.RFC3339),
			Sunset:  time.Unix(p.Sys.Sunset, 0).UTC().Format(time.RFC3339),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// TransformForecast buckets the provider's 3-hour samples by calendar date in
// first-seen order, keeps the first days buckets, and aggregates each bucket
// into a DailyForecast. Fewer days of data than requested yields fewer
// entries.
func TransformForecast(p *ForecastPayload, days int) ForecastData {
	var dates []string
	buckets := make(map[string][]ForecastSample)

	for _, sample := range p.List {
		date, _, found := strings.Cut(sample.DtTxt, " ")
		if !found && date == "" {
			continue
		}
		if _, seen := buckets[date]; !seen {
			dates = append(dates, date)
		}
		buckets[date] = append(buckets[date], sample)
	}

	if len(dates) > days {
		dates = dates[:days]
	}

	forecast := make([]DailyForecast, 0, len(dates))
	for _, date := range dates {
		forecast = append(forecast, aggregateDay(date, buckets[date]))
	}

	return ForecastData{
		Location: Location{
			Name:        p.City.Name,
			Country:     p.City.Country,
			Coordinates: p.City.Coord,
		},
		Forecast: forecast,
	}
}

// aggregateDay folds one day's samples into a single entry. The
// representative condition is a midday snapshot: the middle-indexed sample,
// falling back to the first sample when it carries no condition.
func aggregateDay(date string, samples []ForecastSample) DailyForecast {
	minTemp := samples[0].Main.Temp
	maxTemp := samples[0].Main.Temp
	var sumTemp, sumHumidity, sumWind, sumClouds, sumPop float64

	for _, s := range samples {
		if s.Main.Temp < minTemp {
			minTemp = s.Main.Temp
		}
		if s.Main.Temp > maxTemp {
			maxTemp = s.Main.Temp
		}
		sumTemp += s.Main.Temp
		sumHumidity += s.Main.Humidity
		sumWind += s.Wind.Speed
		sumClouds += s.Clouds.All
		sumPop += s.Pop * 100
	}

	n := float64(len(samples))

	midday := samples[len(samples)/2].Weather
	if len(midday) == 0 {
		midday = samples[0].Weather
	}
	cond, desc, icon := conditionOf(midday)

	return DailyForecast{
		Date: date,
		Temperature: TemperatureRange{
			Min: roundInt(minTemp),
			Max: roundInt(maxTemp),
			Avg: roundInt(sumTemp / n),
		},
		Condition:    cond,
		Description:  desc,
		Icon:         icon,
		Humidity:     roundInt(sumHumidity / n),
		WindSpeed:    round1(sumWind / n),
		Cloudiness:   roundInt(sumClouds / n),
		ChanceOfRain: roundInt(sumPop / n),
	}
}

func conditionOf(items []conditionInfo) (condition, description, icon string) {
	if len(items) == 0 {
		return defaultCondition, defaultDescription, defaultIcon
	}
	condition, description, icon = items[0].Main, items[0].Description, items[0].Icon
	if condition == "" {
		condition = defaultCondition
	}
	if description == "" {
		description = defaultDescription
	}
	if icon == "" {
		icon = defaultIcon
	}
	return condition, description, icon
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
