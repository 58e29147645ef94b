package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/snow-report/internal/common"
	"github.com/i474232898/snow-report/internal/weather"
)

const (
	openMeteoName    = "openmeteo"
	openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	// Open-Meteo returns times in GMT without a zone suffix unless a timezone
	// parameter is sent.
	openMeteoHourLayout = "2006-01-02T15:04"

	// Hours of history requested so the 24h and 48h windows are fully covered.
	pastHours    = 72
	forecastDays = 7
)

var (
	currentFields = []string{"temperature_2m", "windspeed_10m", "weathercode", "uv_index"}
	hourlyFields  = []string{"snowfall", "temperature_2m"}
	dailyFields   = []string{"snowfall_sum", "temperature_2m_max", "temperature_2m_min", "weathercode", "windspeed_10m_max"}
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// OpenMeteoOption configures an OpenMeteoProvider.
type OpenMeteoOption func(*openMeteoOptions)

type openMeteoOptions struct {
	baseURL string
	breaker BreakerConfig
}

// WithBaseURL points the provider at a different forecast endpoint.
func WithBaseURL(u string) OpenMeteoOption {
	return func(o *openMeteoOptions) {
		o.baseURL = u
	}
}

// WithBreaker overrides the circuit breaker thresholds.
func WithBreaker(cfg BreakerConfig) OpenMeteoOption {
	return func(o *openMeteoOptions) {
		o.breaker = cfg
	}
}

func NewOpenMeteoProvider(client *http.Client, opts ...OpenMeteoOption) *OpenMeteoProvider {
	o := openMeteoOptions{
		baseURL: openMeteoBaseURL,
		breaker: DefaultBreakerConfig,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &OpenMeteoProvider{
		name:    openMeteoName,
		baseURL: o.baseURL,
		client:  client,
		circuit: newCircuitBreaker(openMeteoName, o.breaker),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Fetch requests current conditions, 72 hours of hourly history and a 7-day
// daily forecast, with temperatures in Fahrenheit and wind in mph.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, coords weather.Coordinates) (weather.RawForecast, error) {
	var payload openMeteoResponse
	if err := getJSON(ctx, p.client, p.circuit, p.name, p.requestURL(coords), &payload); err != nil {
		return weather.RawForecast{}, err
	}
	return payload.toRaw(), nil
}

func (p *OpenMeteoProvider) requestURL(coords weather.Coordinates) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	values.Set("current", strings.Join(currentFields, ","))
	values.Set("hourly", strings.Join(hourlyFields, ","))
	values.Set("daily", strings.Join(dailyFields, ","))
	values.Set("temperature_unit", "fahrenheit")
	values.Set("windspeed_unit", "mph")
	values.Set("past_hours", strconv.Itoa(pastHours))
	values.Set("forecast_days", strconv.Itoa(forecastDays))

	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}

// openMeteoResponse mirrors the subset of the forecast payload we request.
// Series values are pointers because Open-Meteo emits null for missing data.
type openMeteoResponse struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"windspeed_10m"`
		WeatherCode *int    `json:"weathercode"`
		UVIndex     float64 `json:"uv_index"`
	} `json:"current"`
	Hourly *struct {
		Time        []string   `json:"time"`
		Snowfall    []*float64 `json:"snowfall"`       // cm
		Temperature []*float64 `json:"temperature_2m"` // °F
	} `json:"hourly"`
	Daily *struct {
		Time         []string   `json:"time"`
		SnowfallSum  []*float64 `json:"snowfall_sum"` // cm
		TempMax      []*float64 `json:"temperature_2m_max"`
		TempMin      []*float64 `json:"temperature_2m_min"`
		WeatherCode  []*int     `json:"weathercode"`
		WindSpeedMax []*float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

func (r *openMeteoResponse) check() error {
	switch {
	case r.Current == nil:
		return errors.New("missing current section")
	case r.Hourly == nil:
		return errors.New("missing hourly section")
	}
	return nil
}

// toRaw must only be called on a payload that passed check.
func (r openMeteoResponse) toRaw() weather.RawForecast {
	raw := weather.RawForecast{
		Current: weather.CurrentReading{
			TemperatureF: r.Current.Temperature,
			WindSpeedMph: r.Current.WindSpeed,
			UVIndex:      r.Current.UVIndex,
			Code:         r.Current.WeatherCode,
		},
		Hourly: make([]weather.HourlySample, 0, len(r.Hourly.Time)),
	}

	for i, ts := range r.Hourly.Time {
		raw.Hourly = append(raw.Hourly, weather.HourlySample{
			Time:         parseHour(ts),
			SnowfallCm:   common.At(r.Hourly.Snowfall, i),
			TemperatureF: common.At(r.Hourly.Temperature, i),
		})
	}

	if r.Daily != nil {
		raw.Daily = make([]weather.DailyReading, 0, len(r.Daily.Time))
		for i, date := range r.Daily.Time {
			raw.Daily = append(raw.Daily, weather.DailyReading{
				Date:       date,
				SnowfallCm: common.At(r.Daily.SnowfallSum, i),
				HighF:      common.At(r.Daily.TempMax, i),
				LowF:       common.At(r.Daily.TempMin, i),
				WindMaxMph: common.At(r.Daily.WindSpeedMax, i),
				Code:       common.At(r.Daily.WeatherCode, i),
			})
		}
	}

	return raw
}

// parseHour parses an hourly timestamp as UTC. Unparseable values yield the
// zero time, which the window aggregation skips.
func parseHour(s string) time.Time {
	if ts, err := time.ParseInLocation(openMeteoHourLayout, s, time.UTC); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC()
	}
	return time.Time{}
}
