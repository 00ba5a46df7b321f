// ABOUTME: Weather source adapter backed by the OpenWeatherMap REST API
// ABOUTME: Predicts rain from the 3-hourly forecast and derives agricultural advice
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"github.com/harper/agri-advisor/internal/models"
	"github.com/harper/agri-advisor/internal/util"
)

// DefaultWeatherBaseURL is the OpenWeatherMap 2.5 API root
const DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// forecastWindow is the number of 3-hour forecast slots covering the next day
const forecastWindow = 8

const (
	rainExpected  = "Rain expected in next 24 hours"
	rainUnlikely  = "Low chance of rain"
	mockRainLabel = "Low chance of rain tomorrow"
)

// WeatherProvider returns current conditions and advice for a location
type WeatherProvider interface {
	GetWeather(ctx context.Context, location string) (models.WeatherReport, error)
}

// WeatherConfig configures the OpenWeatherMap client
type WeatherConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// OpenWeatherClient talks to OpenWeatherMap
type OpenWeatherClient struct {
	http   *http.Client
	config WeatherConfig
	logger *zap.Logger
}

// NewOpenWeatherClient creates a weather client; an empty API key serves the mock report
func NewOpenWeatherClient(cfg WeatherConfig, logger *zap.Logger) *OpenWeatherClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultWeatherBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenWeatherClient{
		http:   &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		logger: logger,
	}
}

// MockReport is served when no API key is configured
func MockReport(location string) models.WeatherReport {
	return models.WeatherReport{
		Location:       location,
		Temperature:    25,
		Humidity:       65,
		Description:    "Partly cloudy",
		RainPrediction: mockRainLabel,
		Advice:         "Good weather for field work. Monitor for any sudden changes.",
		Forecast:       &models.WeatherForecast{Temperature: 26, Humidity: 70, RainChance: 20},
		Note:           "Using mock data. Set OPENWEATHER_API_KEY in .env for real data.",
	}
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owmMain struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

type owmCurrent struct {
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owmSlot struct {
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Pop     *float64       `json:"pop"`
}

type owmForecast struct {
	List []owmSlot `json:"list"`
}

// GetWeather fetches current conditions and the next-day forecast
func (c *OpenWeatherClient) GetWeather(ctx context.Context, location string) (models.WeatherReport, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return models.WeatherReport{}, goerr.Wrap(models.ErrValidation, "location is required")
	}
	if c.config.APIKey == "" {
		c.logger.Debug("no weather API key, serving mock report", zap.String("location", location))
		return MockReport(location), nil
	}

	var current owmCurrent
	if err := c.getJSON(ctx, "/weather", location, &current); err != nil {
		return models.WeatherReport{}, err
	}

	// The forecast is best-effort; a failure only loses the rain outlook
	var forecast *owmForecast
	var fc owmForecast
	if err := c.getJSON(ctx, "/forecast", location, &fc); err != nil {
		c.logger.Warn("weather forecast unavailable", zap.String("location", location), zap.Error(err))
	} else {
		forecast = &fc
	}

	temp := current.Main.Temp
	humidity := current.Main.Humidity
	description := ""
	if len(current.Weather) > 0 {
		description = titleCase(current.Weather[0].Description)
	}
	wind := current.Wind.Speed

	rainPrediction, tomorrow := predictRain(forecast, temp, humidity)

	return models.WeatherReport{
		Location:       location,
		Temperature:    round1(temp),
		Humidity:       humidity,
		Description:    description,
		WindSpeed:      round1(wind),
		RainPrediction: rainPrediction,
		Advice:         GenerateAgriculturalAdvice(temp, humidity, rainPrediction, wind),
		Forecast:       tomorrow,
	}, nil
}

// predictRain scans the next day of forecast slots for rain
func predictRain(forecast *owmForecast, temp float64, humidity int) (string, *models.WeatherForecast) {
	if forecast == nil {
		return rainUnlikely, &models.WeatherForecast{
			Temperature: temp + 2,
			Humidity:    humidity + 5,
		}
	}

	slots := forecast.List
	if len(slots) > forecastWindow {
		slots = slots[:forecastWindow]
	}
	for _, slot := range slots {
		if slotHasRain(slot) {
			chance := 50
			if slot.Pop != nil {
				chance = int(math.Round(*slot.Pop * 100))
			}
			return rainExpected, &models.WeatherForecast{
				Temperature: slot.Main.Temp,
				Humidity:    slot.Main.Humidity,
				RainChance:  chance,
			}
		}
	}

	if len(forecast.List) == 0 {
		return rainUnlikely, nil
	}
	first := forecast.List[0]
	chance := 0
	if first.Pop != nil {
		chance = int(math.Round(*first.Pop * 100))
	}
	return rainUnlikely, &models.WeatherForecast{
		Temperature: first.Main.Temp,
		Humidity:    first.Main.Humidity,
		RainChance:  chance,
	}
}

func slotHasRain(slot owmSlot) bool {
	if len(slot.Weather) == 0 {
		return false
	}
	w := slot.Weather[0]
	return strings.Contains(strings.ToLower(w.Main), "rain") ||
		strings.Contains(strings.ToLower(w.Description), "rain")
}

// GenerateAgriculturalAdvice turns conditions into field-work advice
func GenerateAgriculturalAdvice(temperature float64, humidity int, rainPrediction string, windSpeed float64) string {
	parts := make([]string, 0, 4)

	switch {
	case temperature < 10:
		parts = append(parts, "Cold weather - protect sensitive crops with covers.")
	case temperature > 35:
		parts = append(parts, "Hot weather - ensure adequate irrigation and shade for sensitive plants.")
	default:
		parts = append(parts, "Good temperature for most crops.")
	}

	switch {
	case humidity > 80:
		parts = append(parts, "High humidity - watch for fungal diseases, ensure good air circulation.")
	case humidity < 40:
		parts = append(parts, "Low humidity - increase irrigation frequency.")
	}

	if strings.Contains(strings.ToLower(rainPrediction), "rain expected") {
		parts = append(parts, "Rain expected - avoid spraying pesticides, postpone field work if possible.")
	} else {
		parts = append(parts, "No rain expected - good time for field work and spraying.")
	}

	if windSpeed > 15 {
		parts = append(parts, "Strong winds - avoid spraying, protect young plants.")
	}

	return strings.Join(parts, " ")
}

// getJSON performs a GET with retries on transport errors and 5xx responses
func (c *OpenWeatherClient) getJSON(ctx context.Context, path, location string, out any) error {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.config.APIKey)
	q.Set("units", "metric")
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path + "?" + q.Encode()

	return util.Retry(ctx, c.config.MaxRetries, c.config.RetryDelay, func(ctx context.Context, attempt int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return util.Permanent(goerr.Wrap(models.ErrAdapterUnavailable, "failed to build weather request",
				goerr.V("cause", err.Error())))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return util.Permanent(err)
			}
			return goerr.Wrap(models.ErrAdapterUnavailable, "weather request failed",
				goerr.V("path", path),
				goerr.V("cause", err.Error()))
		}
		defer drainAndClose(resp.Body)

		if resp.StatusCode != http.StatusOK {
			err := goerr.Wrap(models.ErrAdapterUnavailable, fmt.Sprintf("weather API error: %d", resp.StatusCode),
				goerr.V("path", path),
				goerr.V("location", location))
			if resp.StatusCode >= 500 {
				return err
			}
			return util.Permanent(err)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return util.Permanent(goerr.Wrap(models.ErrAdapterUnavailable, "invalid weather response",
				goerr.V("path", path),
				goerr.V("cause", err.Error())))
		}
		return nil
	})
}

func drainAndClose(r io.ReadCloser) {
	_, _ = io.Copy(io.Discard, r)
	_ = r.Close()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// titleCase upper-cases the first letter of every word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
