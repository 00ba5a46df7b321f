// ABOUTME: Weather report returned by weather providers
// ABOUTME: Carries current conditions, a next-day forecast and agricultural advice
package models

// WeatherForecast is the next-day outlook
type WeatherForecast struct {
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	RainChance  int     `json:"rain_chance"`
}

// WeatherReport is the result of a weather lookup
type WeatherReport struct {
	Location       string           `json:"location"`
	Temperature    float64          `json:"temperature"`
	Humidity       int              `json:"humidity"`
	Description    string           `json:"description"`
	RainPrediction string           `json:"rain_prediction"`
	Advice         string           `json:"advice"`
	WindSpeed      float64          `json:"wind_speed"`
	Forecast       *WeatherForecast `json:"forecast,omitempty"`
	Note           string           `json:"note,omitempty"`
}

// ToAdvice projects the report onto the comprehensive advisory shape
func (r WeatherReport) ToAdvice() *WeatherAdvice {
	return &WeatherAdvice{
		Location:       r.Location,
		Temperature:    r.Temperature,
		Humidity:       r.Humidity,
		Description:    r.Description,
		RainPrediction: r.RainPrediction,
		Advice:         r.Advice,
	}
}
