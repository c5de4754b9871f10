package weather

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// Location identifies the place a weather response describes.
type Location struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// CurrentConditions holds normalized current weather values. Temperature and
// wind are in the units requested at fetch time.
type CurrentConditions struct {
	Temperature   int     `json:"temperature"`
	FeelsLike     int     `json:"feelsLike"`
	Humidity      int     `json:"humidity"`
	Pressure      int     `json:"pressure"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection int     `json:"windDirection"`
	Visibility    int     `json:"visibility"`
	Cloudiness    int     `json:"cloudiness"`
	Condition     string  `json:"condition"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
}

// Sun holds sunrise and sunset as RFC3339 timestamps.
type Sun struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// WeatherData is the normalized current-weather response.
type WeatherData struct {
	Location  Location          `json:"location"`
	Current   CurrentConditions `json:"current"`
	Sun       Sun               `json:"sun"`
	Timestamp string            `json:"timestamp"`
}

// TemperatureRange summarizes one day's temperatures.
type TemperatureRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

// DailyForecast is one calendar day aggregated from 3-hourly samples.
type DailyForecast struct {
	Date         string           `json:"date"`
	Temperature  TemperatureRange `json:"temperature"`
	Condition    string           `json:"condition"`
	Description  string           `json:"description"`
	Icon         string           `json:"icon"`
	Humidity     int              `json:"humidity"`
	WindSpeed    float64          `json:"windSpeed"`
	Cloudiness   int              `json:"cloudiness"`
	ChanceOfRain int              `json:"chanceOfRain"`
}

// ForecastData is the normalized multi-day forecast response.
type ForecastData struct {
	Location Location        `json:"location"`
	Forecast []DailyForecast `json:"forecast"`
}

// conditionInfo is a provider weather-array element.
type conditionInfo struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentPayload is the provider's current-weather response shape
// (OpenWeatherMap /weather).
type CurrentPayload struct {
	Coord   Coordinates     `json:"coord"`
	Weather []conditionInfo `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

// ForecastSample is a single 3-hour sample from the provider's forecast list.
type ForecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []conditionInfo `json:"weather"`
	Clouds  struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop   float64 `json:"pop"`
	DtTxt string  `json:"dt_txt"`
}

// ForecastPayload is the provider's 5-day/3-hour forecast response shape
// (OpenWeatherMap /forecast).
type ForecastPayload struct {
	List []ForecastSample `json:"list"`
	City struct {
		Name    string      `json:"name"`
		Coord   Coordinates `json:"coord"`
		Country string      `json:"country"`
	} `json:"city"`
}
