package weather

import (
	"testing"
	"time"
)

func sample(dtTxt string, temp, humidity, wind, clouds, pop float64, cond, desc, icon string) ForecastSample {
	s := ForecastSample{DtTxt: dtTxt, Pop: pop}
	s.Main.Temp = temp
	s.Main.Humidity = humidity
	s.Wind.Speed = wind
	s.Clouds.All = clouds
	if cond != "" {
		s.Weather = []conditionInfo{{Main: cond, Description: desc, Icon: icon}}
	}
	return s
}

func TestTransformCurrent(t *testing.T) {
	p := &CurrentPayload{Name: "London"}
	p.Sys.Country = "GB"
	p.Coord = Coordinates{Lat: 51.51, Lon: -0.13}
	p.Main.Temp = 15.6
	p.Main.FeelsLike = 14.4
	p.Main.Humidity = 81
	p.Main.Pressure = 1012
	p.Wind.Speed = 4.1
	p.Wind.Deg = 250
	p.Visibility = 10000
	p.Clouds.All = 75
	p.Weather = []conditionInfo{{Main: "Clouds", Description: "broken clouds", Icon: "04d"}}
	p.Sys.Sunrise = 1700000000
	p.Sys.Sunset = 1700035200

	data := TransformCurrent(p)

	if data.Location.Name != "London" || data.Location.Country != "GB" {
		t.Errorf("unexpected location: %+v", data.Location)
	}
	if data.Current.Temperature != 16 {
		t.Errorf("expected temperature 16, got %d", data.Current.Temperature)
	}
	if data.Current.FeelsLike != 14 {
		t.Errorf("expected feelsLike 14, got %d", data.Current.FeelsLike)
	}
	if data.Current.Condition != "Clouds" || data.Current.Icon != "04d" {
		t.Errorf("unexpected condition: %+v", data.Current)
	}

	wantSunrise := time.Unix(1700000000, 0).UTC().Format(time.RFC3339)
	if data.Sun.Sunrise != wantSunrise {
		t.Errorf("expected sunrise %s, got %s", wantSunrise, data.Sun.Sunrise)
	}
	if _, err := time.Parse(time.RFC3339, data.Timestamp); err != nil {
		t.Errorf("timestamp is not RFC3339: %q", data.Timestamp)
	}
}

func TestTransformCurrentDefaultsWithoutCondition(t *testing.T) {
	data := TransformCurrent(&CurrentPayload{})
	if data.Current.Condition != "Unknown" {
		t.Errorf("expected condition Unknown, got %q", data.Current.Condition)
	}
	if data.Current.Description != "No description" {
		t.Errorf("expected default description, got %q", data.Current.Description)
	}
	if data.Current.Icon != "01d" {
		t.Errorf("expected default icon, got %q", data.Current.Icon)
	}
}

func TestTransformForecastAggregation(t *testing.T) {
	p := &ForecastPayload{}
	p.City.Name = "Paris"
	p.City.Country = "FR"
	p.List = []ForecastSample{
		sample("2026-01-10 06:00:00", 2.0, 90, 3.0, 100, 0.1, "Rain", "light rain", "10d"),
		sample("2026-01-10 12:00:00", 8.0, 70, 5.0, 50, 0.5, "Clouds", "scattered clouds", "03d"),
		sample("2026-01-10 18:00:00", 5.0, 80, 4.0, 75, 0.3, "Clear", "clear sky", "01n"),
		sample("2026-01-11 09:00:00", 1.0, 95, 2.2, 100, 0.9, "Snow", "light snow", "13d"),
		sample("2026-01-11 15:00:00", 3.0, 85, 2.7, 100, 0.7, "Snow", "snow", "13d"),
	}

	data := TransformForecast(p, 5)

	if len(data.Forecast) != 2 {
		t.Fatalf("expected 2 daily entries for 2 days of data, got %d", len(data.Forecast))
	}

	day1 := data.Forecast[0]
	if day1.Date != "2026-01-10" {
		t.Errorf("expected first day 2026-01-10, got %s", day1.Date)
	}
	if day1.Temperature.Min != 2 || day1.Temperature.Max != 8 || day1.Temperature.Avg != 5 {
		t.Errorf("unexpected day1 temperatures: %+v", day1.Temperature)
	}
	// Midday snapshot: index floor(3/2) = 1.
	if day1.Condition != "Clouds" || day1.Icon != "03d" {
		t.Errorf("expected midday condition Clouds/03d, got %s/%s", day1.Condition, day1.Icon)
	}
	if day1.Humidity != 80 {
		t.Errorf("expected humidity 80, got %d", day1.Humidity)
	}
	if day1.WindSpeed != 4.0 {
		t.Errorf("expected wind 4.0, got %v", day1.WindSpeed)
	}
	if day1.Cloudiness != 75 {
		t.Errorf("expected cloudiness 75, got %d", day1.Cloudiness)
	}
	if day1.ChanceOfRain != 30 {
		t.Errorf("expected chanceOfRain 30, got %d", day1.ChanceOfRain)
	}

	day2 := data.Forecast[1]
	// Midday snapshot: index floor(2/2) = 1.
	if day2.Description != "snow" {
		t.Errorf("expected midday description snow, got %q", day2.Description)
	}
	if day2.ChanceOfRain != 80 {
		t.Errorf("expected chanceOfRain 80, got %d", day2.ChanceOfRain)
	}
	if day2.WindSpeed != 2.5 {
		t.Errorf("expected wind 2.5 (rounded to 1 decimal), got %v", day2.WindSpeed)
	}
}

func TestTransformForecastMinAvgMaxOrdering(t *testing.T) {
	p := &ForecastPayload{}
	p.List = []ForecastSample{
		sample("2026-03-01 00:00:00", -4.3, 50, 1, 0, 0, "Clear", "clear sky", "01d"),
		sample("2026-03-01 09:00:00", 6.7, 50, 1, 0, 0, "Clear", "clear sky", "01d"),
		sample("2026-03-01 15:00:00", 11.2, 50, 1, 0, 0, "Clear", "clear sky", "01d"),
		sample("2026-03-02 12:00:00", 9.9, 50, 1, 0, 0, "Clear", "clear sky", "01d"),
	}

	for _, day := range TransformForecast(p, 5).Forecast {
		if day.Temperature.Min > day.Temperature.Avg || day.Temperature.Avg > day.Temperature.Max {
			t.Errorf("day %s: expected min <= avg <= max, got %+v", day.Date, day.Temperature)
		}
	}
}

func TestTransformForecastTruncatesToRequestedDays(t *testing.T) {
	p := &ForecastPayload{}
	for _, date := range []string{"2026-01-10", "2026-01-11", "2026-01-12", "2026-01-13"} {
		p.List = append(p.List, sample(date+" 12:00:00", 5, 50, 1, 0, 0, "Clear", "clear sky", "01d"))
	}

	data := TransformForecast(p, 2)
	if len(data.Forecast) != 2 {
		t.Fatalf("expected positional truncation to 2 days, got %d", len(data.Forecast))
	}
	if data.Forecast[0].Date != "2026-01-10" || data.Forecast[1].Date != "2026-01-11" {
		t.Errorf("expected first two dates kept in order, got %s, %s",
			data.Forecast[0].Date, data.Forecast[1].Date)
	}
}

func TestTransformForecastMiddayFallback(t *testing.T) {
	p := &ForecastPayload{}
	p.List = []ForecastSample{
		sample("2026-01-10 06:00:00", 2, 50, 1, 0, 0, "Rain", "light rain", "10d"),
		sample("2026-01-10 12:00:00", 4, 50, 1, 0, 0, "", "", ""), // no condition data
	}

	data := TransformForecast(p, 5)
	if data.Forecast[0].Condition != "Rain" {
		t.Errorf("expected fallback to first sample's condition, got %q", data.Forecast[0].Condition)
	}
}
