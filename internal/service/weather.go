package service

import (
	"fmt"
	"time"

	"monitoring-demo/internal/metrics"
)

// Conditions are the forecast conditions a slot can take.
var Conditions = []string{"☀️ Sunny", "⛅ Partly Cloudy", "☁️ Cloudy", "🌧️ Rainy", "⛈️ Stormy"}

const homeLocation = "jakarta"

var (
	updateLocations = []string{"jakarta", "bandung", "surabaya", "medan"}
	scrapeLocations = []string{"jakarta", "bandung", "surabaya"}
)

// weatherRanges bounds one round of readings.
type weatherRanges struct {
	temperature, humidity, pressure, wind, rainfall, airQuality Range
}

var (
	homeWeather   = weatherRanges{Range{20, 35}, Range{40, 90}, Range{1000, 1020}, Range{0, 25}, Range{0, 15}, Range{50, 200}}
	updateWeather = weatherRanges{Range{18, 38}, Range{30, 95}, Range{995, 1025}, Range{0, 30}, Range{0, 20}, Range{40, 250}}
	scrapeWeather = weatherRanges{Range{20, 35}, Range{40, 85}, Range{1000, 1020}, Range{0, 20}, Range{0, 10}, Range{50, 180}}
)

// Reading is one set of weather readings for a location.
type Reading struct {
	Location    string
	Temperature float64
	Humidity    float64
	Pressure    float64
	WindSpeed   float64
	Rainfall    float64
	AirQuality  float64
}

// ForecastSlot is one hour of the forecast.
type ForecastSlot struct {
	Time      string
	Condition string
	Temp      int
}

// WeatherOverview is what the weather dashboard shows.
type WeatherOverview struct {
	Current  Reading
	Forecast []ForecastSlot
}

// Weather simulates a set of weather stations.
type Weather struct {
	deps Deps

	temperature *metrics.GaugeVec
	humidity    *metrics.GaugeVec
	pressure    *metrics.GaugeVec
	windSpeed   *metrics.GaugeVec
	rainfall    *metrics.GaugeVec
	airQuality  *metrics.GaugeVec
}

func NewWeather(deps Deps) *Weather {
	deps = deps.withDefaults()
	reg := deps.Registry
	return &Weather{
		deps:        deps,
		temperature: reg.MustGaugeVec("weather_temperature_celsius", "Temperature in Celsius", "location"),
		humidity:    reg.MustGaugeVec("weather_humidity_percent", "Humidity percentage", "location"),
		pressure:    reg.MustGaugeVec("weather_pressure_hpa", "Atmospheric pressure in hPa", "location"),
		windSpeed:   reg.MustGaugeVec("weather_wind_speed_kmh", "Wind speed in km/h", "location"),
		rainfall:    reg.MustGaugeVec("weather_rainfall_mm", "Rainfall in mm", "location"),
		airQuality:  reg.MustGaugeVec("weather_air_quality_index", "Air quality index", "location"),
	}
}

// Overview reads the home station and draws a fresh forecast.
func (w *Weather) Overview() WeatherOverview {
	return WeatherOverview{
		Current:  w.read(homeLocation, homeWeather),
		Forecast: w.forecast(),
	}
}

// Update re-reads every station.
func (w *Weather) Update() string {
	for _, loc := range updateLocations {
		w.read(loc, updateWeather)
	}
	w.deps.pause(500*time.Millisecond, 1500*time.Millisecond)
	return "✅ Weather data updated for all locations!"
}

// Refresh re-reads the scraped stations ahead of a scrape.
func (w *Weather) Refresh() {
	for _, loc := range scrapeLocations {
		w.read(loc, scrapeWeather)
	}
}

func (w *Weather) read(location string, r weatherRanges) Reading {
	s := w.deps.Sampler
	rd := Reading{
		Location:    location,
		Temperature: r.temperature.draw(s),
		Humidity:    r.humidity.draw(s),
		Pressure:    r.pressure.draw(s),
		WindSpeed:   r.wind.draw(s),
		Rainfall:    r.rainfall.draw(s),
		AirQuality:  r.airQuality.draw(s),
	}
	w.temperature.WithLabelValues(location).Set(rd.Temperature)
	w.humidity.WithLabelValues(location).Set(rd.Humidity)
	w.pressure.WithLabelValues(location).Set(rd.Pressure)
	w.windSpeed.WithLabelValues(location).Set(rd.WindSpeed)
	w.rainfall.WithLabelValues(location).Set(rd.Rainfall)
	w.airQuality.WithLabelValues(location).Set(rd.AirQuality)
	return rd
}

func (w *Weather) forecast() []ForecastSlot {
	s := w.deps.Sampler
	hour := w.deps.Now().Hour()
	slots := make([]ForecastSlot, 5)
	for i := range slots {
		slots[i] = ForecastSlot{
			Time:      fmt.Sprintf("%02d:00", (hour+i+1)%24),
			Condition: Conditions[s.Pick(len(Conditions))],
			Temp:      IntRange{20, 35}.draw(s),
		}
	}
	return slots
}
