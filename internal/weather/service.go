package weather

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/snow-report/internal/common"
)

// Trailing windows, in hours, for the precipitation totals.
const (
	PrecipShortWindowHours = 24
	PrecipLongWindowHours  = 48
)

var errNoProvider = errors.New("no weather provider configured")

// Service normalizes provider forecasts into resort weather summaries.
type Service struct {
	provider Provider
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the source of the current instant used for the
// trailing precipitation windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger used to report per-resort failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service backed by provider.
func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize fetches the forecast for a single resort and returns its summary.
// It returns *MissingCoordinatesError when the resort has no coordinates and
// passes provider errors through unchanged. It never retries.
func (s *Service) Normalize(ctx context.Context, resort Resort) (WeatherSummary, error) {
	if resort.Coordinates == nil {
		return WeatherSummary{}, &MissingCoordinatesError{ResortID: resort.ID}
	}
	if s.provider == nil {
		return WeatherSummary{}, &ProviderError{Provider: "none", Err: errNoProvider}
	}

	raw, err := s.provider.Fetch(ctx, *resort.Coordinates)
	if err != nil {
		return WeatherSummary{}, err
	}

	return Summarize(raw, s.now()), nil
}

// Summarize derives a WeatherSummary from a raw provider forecast. now is the
// end of the trailing precipitation windows.
func Summarize(raw RawForecast, now time.Time) WeatherSummary {
	high, low := TemperatureRange(raw.Hourly)

	summary := WeatherSummary{
		CurrentTemp:      RoundInt(raw.Current.TemperatureF),
		WeatherCondition: mapCode(raw.Current.Code),
		Precip24h:        SnowfallInches(raw.Hourly, PrecipShortWindowHours, now),
		Precip48h:        SnowfallInches(raw.Hourly, PrecipLongWindowHours, now),
		HighTemp:         high,
		LowTemp:          low,
		UVIndex:          RoundInt(raw.Current.UVIndex),
		WindSpeed:        RoundInt(raw.Current.WindSpeedMph),
	}

	if raw.Daily != nil {
		summary.DailyForecast = make(Forecast, 0, len(raw.Daily))
		for _, day := range raw.Daily {
			summary.DailyForecast = append(summary.DailyForecast, DailyForecast{
				Date:             day.Date,
				Snowfall:         CmToInches(common.ValueOr(day.SnowfallCm, 0)),
				TempHigh:         RoundInt(common.ValueOr(day.HighF, 0)),
				TempLow:          RoundInt(common.ValueOr(day.LowF, 0)),
				WeatherCondition: mapCode(day.Code),
				WindSpeed:        RoundInt(common.ValueOr(day.WindMaxMph, 0)),
			})
		}
	}

	return summary
}

// Outcome is the result of normalizing one resort of a batch.
type Outcome struct {
	Resort  Resort
	Summary WeatherSummary
	Err     error
}

// Batch is the merged result of a fan-out over a resort list.
type Batch struct {
	ID      string
	Resorts []Resort

	// Stale lists the ids of resorts that kept their static values.
	Stale []string
}

// FetchAll normalizes every resort concurrently. The returned outcomes are in
// the same order as resorts; each goroutine writes only its own slot.
func (s *Service) FetchAll(ctx context.Context, resorts []Resort) []Outcome {
	outcomes := make([]Outcome, len(resorts))

	var wg sync.WaitGroup
	for i, r := range resorts {
		wg.Add(1)
		go func(i int, r Resort) {
			defer wg.Done()

			summary, err := s.Normalize(ctx, r)
			outcomes[i] = Outcome{Resort: r, Summary: summary, Err: err}
		}(i, r)
	}
	wg.Wait()

	return outcomes
}

// Refresh runs FetchAll and merges the outcomes. A resort whose fetch failed
// is returned unchanged and its failure is logged; Refresh itself never fails.
func (s *Service) Refresh(ctx context.Context, resorts []Resort) Batch {
	batch := Batch{
		ID:      uuid.NewString(),
		Resorts: make([]Resort, 0, len(resorts)),
	}
	logger := s.logger.With(zap.String("batch_id", batch.ID))
	logger.Debug("normalizing resorts", zap.Int("count", len(resorts)))

	for _, o := range s.FetchAll(ctx, resorts) {
		if o.Err != nil {
			logger.Warn("weather fetch failed; keeping static values",
				zap.String("resort_id", o.Resort.ID),
				zap.String("resort", o.Resort.Name),
				zap.Error(o.Err))
			batch.Resorts = append(batch.Resorts, o.Resort)
			batch.Stale = append(batch.Stale, o.Resort.ID)
			continue
		}
		batch.Resorts = append(batch.Resorts, o.Resort.WithSummary(o.Summary))
	}

	logger.Info("normalized resorts",
		zap.Int("live", len(resorts)-len(batch.Stale)),
		zap.Int("stale", len(batch.Stale)))
	return batch
}

// NormalizeAll returns resorts overlaid with fresh weather, in input order.
// Resorts that could not be normalized are returned as given.
func (s *Service) NormalizeAll(ctx context.Context, resorts []Resort) []Resort {
	return s.Refresh(ctx, resorts).Resorts
}
