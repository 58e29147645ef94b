package weather

import (
	"context"
	"time"
)

// CurrentReading is the provider's current-conditions snapshot, already in
// Fahrenheit and mph.
type CurrentReading struct {
	TemperatureF float64
	WindSpeedMph float64
	UVIndex      float64
	Code         *int
}

// HourlySample is a single entry of the hourly series. Nil values are nulls in
// the provider payload. A zero Time marks a timestamp that could not be parsed.
type HourlySample struct {
	Time         time.Time
	SnowfallCm   *float64
	TemperatureF *float64
}

// DailyReading is a single entry of the provider's daily series.
type DailyReading struct {
	Date       string
	SnowfallCm *float64
	HighF      *float64
	LowF       *float64
	WindMaxMph *float64
	Code       *int
}

// RawForecast is a provider response translated into provider-neutral types
// but not yet normalized.
type RawForecast struct {
	Current CurrentReading
	Hourly  []HourlySample

	// Daily is nil when the response carried no daily section.
	Daily []DailyReading
}

// Provider abstracts the upstream forecast source. Implementations report
// failures as *ProviderError.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords Coordinates) (RawForecast, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, coords Coordinates) (RawForecast, error)

func (f ProviderFunc) Name() string { return "func" }

func (f ProviderFunc) Fetch(ctx context.Context, coords Coordinates) (RawForecast, error) {
	return f(ctx, coords)
}
