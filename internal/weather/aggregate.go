package weather

import (
	"math"
	"time"

	"github.com/i474232898/snow-report/internal/common"
)

// highLowHours is the number of leading hourly readings used for the day's
// high and low, counted from the start of the hourly series.
const highLowHours = 24

// SumWindow sums the snowfall of every sample whose timestamp lies in
// [now-window, now]. Both ends are inclusive, so a sample exactly on the
// boundary of two adjacent windows is counted in both. Null depths count as
// zero and samples with an unparsed (zero) timestamp are skipped.
func SumWindow(samples []HourlySample, window time.Duration, now time.Time) float64 {
	cutoff := now.Add(-window)

	var total float64
	for _, s := range samples {
		if s.Time.IsZero() {
			continue
		}
		if s.Time.Before(cutoff) || s.Time.After(now) {
			continue
		}
		total += common.ValueOr(s.SnowfallCm, 0)
	}
	return total
}

// SnowfallInches returns the snowfall of the trailing window of the given
// number of hours, converted from centimetres to inches.
func SnowfallInches(samples []HourlySample, hours int, now time.Time) float64 {
	return CmToInches(SumWindow(samples, time.Duration(hours)*time.Hour, now))
}

// TemperatureRange returns the rounded high and low over the first 24 hourly
// temperatures. Null readings are ignored; with no readings both are zero.
func TemperatureRange(samples []HourlySample) (high, low int) {
	if len(samples) > highLowHours {
		samples = samples[:highLowHours]
	}

	maxT, minT := math.Inf(-1), math.Inf(1)
	for _, s := range samples {
		if s.TemperatureF == nil {
			continue
		}
		maxT = math.Max(maxT, *s.TemperatureF)
		minT = math.Min(minT, *s.TemperatureF)
	}
	if math.IsInf(maxT, -1) {
		return 0, 0
	}
	return RoundInt(maxT), RoundInt(minT)
}
