package model

// WeatherForecast is tomorrow's outlook reduced to what forecasting
// needs.
type WeatherForecast struct {
	Date     string  `json:"date"`
	TempHigh float64 `json:"temp_high"`
	TempLow  float64 `json:"temp_low"`
	// Condition is the weather-code label ("Clear", "Rain", ...).
	Condition string `json:"condition"`
}

// AvgTemp reduces the daily range to the single temperature feature
// driving the forecast models. The reduction policy is fixed: the
// arithmetic mean of the daily high and low.
func (w WeatherForecast) AvgTemp() float64 {
	return (w.TempHigh + w.TempLow) / 2
}
