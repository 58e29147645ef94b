package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func intPtr(v int) *int { return &v }

// fixtureForecast is a small synthetic provider response around testNow.
func fixtureForecast() RawForecast {
	return RawForecast{
		Current: CurrentReading{
			TemperatureF: 23.5,
			WindSpeedMph: 12.4,
			UVIndex:      2.6,
			Code:         intPtr(73),
		},
		Hourly: []HourlySample{
			{Time: testNow.Add(-50 * time.Hour), SnowfallCm: ptr(2), TemperatureF: ptr(10)},
			{Time: testNow.Add(-25 * time.Hour), SnowfallCm: ptr(3), TemperatureF: ptr(12)},
			{Time: testNow.Add(-1 * time.Hour), SnowfallCm: ptr(5), TemperatureF: ptr(20.6)},
			{Time: testNow.Add(1 * time.Hour), SnowfallCm: ptr(7), TemperatureF: ptr(25.4)},
		},
		Daily: []DailyReading{
			{Date: "2026-01-15", SnowfallCm: ptr(10), HighF: ptr(30.2), LowF: ptr(11.5), WindMaxMph: ptr(20.5), Code: intPtr(3)},
			{Date: "2026-01-16", LowF: ptr(9), WindMaxMph: ptr(15)},
		},
	}
}

func expectedSummary() WeatherSummary {
	return WeatherSummary{
		CurrentTemp:      24,
		WeatherCondition: ConditionSnowing,
		Precip24h:        2.0,
		Precip48h:        3.1,
		HighTemp:         25,
		LowTemp:          10,
		UVIndex:          3,
		WindSpeed:        12,
		DailyForecast: Forecast{
			{Date: "2026-01-15", Snowfall: 3.9, TempHigh: 30, TempLow: 12, WeatherCondition: ConditionCloudy, WindSpeed: 21},
			{Date: "2026-01-16", Snowfall: 0, TempHigh: 0, TempLow: 9, WeatherCondition: ConditionPartlyCloudy, WindSpeed: 15},
		},
	}
}

func testResorts() []Resort {
	return []Resort{
		{ID: "one", Name: "One", Location: "One, CO", Region: "Colorado", Coordinates: &Coordinates{Lat: 39.1, Lon: -106.1}, CurrentTemp: 1, WeatherCondition: ConditionSunny},
		{ID: "two", Name: "Two", Location: "Two, CO", Region: "Colorado", Coordinates: &Coordinates{Lat: 39.2, Lon: -106.2}, CurrentTemp: 2, WeatherCondition: ConditionWindy, Precip24h: 1.5},
		{ID: "three", Name: "Three", Location: "Three, CO", Region: "Colorado", Coordinates: &Coordinates{Lat: 39.3, Lon: -106.3}, CurrentTemp: 3, WeatherCondition: ConditionCloudy},
	}
}

func fixedClock() time.Time { return testNow }

func newTestService(t *testing.T, p Provider) *Service {
	t.Helper()
	return NewService(p, WithClock(fixedClock), WithLogger(zaptest.NewLogger(t)))
}

func TestNormalizeMissingCoordinates(t *testing.T) {
	var calls int32
	svc := newTestService(t, ProviderFunc(func(ctx context.Context, c Coordinates) (RawForecast, error) {
		atomic.AddInt32(&calls, 1)
		return fixtureForecast(), nil
	}))

	_, err := svc.Normalize(context.Background(), Resort{ID: "nowhere", Name: "Nowhere"})

	var missing *MissingCoordinatesError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingCoordinatesError, got %v", err)
	}
	if missing.ResortID != "nowhere" {
		t.Fatalf("expected resort id in error, got %q", missing.ResortID)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("provider must not be called without coordinates")
	}
}

func TestNormalizePropagatesProviderError(t *testing.T) {
	want := &ProviderError{Provider: "test", StatusCode: http.StatusServiceUnavailable}
	var calls int32
	svc := newTestService(t, ProviderFunc(func(ctx context.Context, c Coordinates) (RawForecast, error) {
		atomic.AddInt32(&calls, 1)
		return RawForecast{}, want
	}))

	_, err := svc.Normalize(context.Background(), testResorts()[0])

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr != want || perr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected the provider error to be returned verbatim, got %+v", perr)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", calls)
	}
}

func TestNormalizeWithoutProvider(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Normalize(context.Background(), testResorts()[0])

	var perr *ProviderError
	if !errors.As(err, &perr) || !errors.Is(err, errNoProvider) {
		t.Fatalf("expected ProviderError wrapping errNoProvider, got %v", err)
	}
}

func TestNormalizeBuildsSummary(t *testing.T) {
	var got Coordinates
	svc := newTestService(t, ProviderFunc(func(ctx context.Context, c Coordinates) (RawForecast, error) {
		got = c
		return fixtureForecast(), nil
	}))

	resort := testResorts()[0]
	summary, err := svc.Normalize(context.Background(), resort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != *resort.Coordinates {
		t.Fatalf("provider called with %+v, want %+v", got, *resort.Coordinates)
	}
	if want := expectedSummary(); !reflect.DeepEqual(summary, want) {
		t.Fatalf("summary mismatch\n got: %+v\nwant: %+v", summary, want)
	}
}

func TestSummarizeMissingDailySection(t *testing.T) {
	raw := fixtureForecast()
	raw.Daily = nil

	summary := Summarize(raw, testNow)
	if summary.DailyForecast != nil {
		t.Fatalf("expected absent forecast, got %#v", summary.DailyForecast)
	}

	body, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["dailyForecast"]; !ok || v != nil {
		t.Fatalf("expected dailyForecast to be null, got %v", v)
	}
}

func TestSummarizeEmptyDailySection(t *testing.T) {
	raw := fixtureForecast()
	raw.Daily = []DailyReading{}

	summary := Summarize(raw, testNow)
	if summary.DailyForecast == nil || len(summary.DailyForecast) != 0 {
		t.Fatalf("expected an empty, present forecast, got %#v", summary.DailyForecast)
	}
}

func TestSummarizeIsStable(t *testing.T) {
	raw := fixtureForecast()

	first, err := json.Marshal(Summarize(raw, testNow))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Summarize(raw, testNow))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("summaries differ:\n%s\n%s", first, second)
	}
}

func TestNormalizeAllIsolatesFailures(t *testing.T) {
	failing := testResorts()[1].Coordinates.Lat
	svc := newTestService(t, ProviderFunc(func(ctx context.Context, c Coordinates) (RawForecast, error) {
		if c.Lat == failing {
			return RawForecast{}, &ProviderError{Provider: "test", StatusCode: http.StatusInternalServerError}
		}
		return fixtureForecast(), nil
	}))

	input := testResorts()
	out := svc.NormalizeAll(context.Background(), input)

	if len(out) != len(input) {
		t.Fatalf("expected %d resorts, got %d", len(input), len(out))
	}
	for i := range input {
		if out[i].ID != input[i].ID {
			t.Fatalf("order not preserved at %d: got %q want %q", i, out[i].ID, input[i].ID)
		}
	}

	if !reflect.DeepEqual(out[1], input[1]) {
		t.Fatalf("failed resort should be unchanged\n got: %+v\nwant: %+v", out[1], input[1])
	}

	want := expectedSummary()
	for _, i := range []int{0, 2} {
		if out[i].CurrentTemp != want.CurrentTemp || out[i].WeatherCondition != want.WeatherCondition {
			t.Fatalf("resort %q not updated: %+v", out[i].ID, out[i])
		}
		if !reflect.DeepEqual(out[i].DailyForecast, want.DailyForecast) {
			t.Fatalf("resort %q forecast not merged", out[i].ID)
		}
		if out[i].Name != input[i].Name || out[i].Coordinates != input[i].Coordinates {
			t.Fatalf("resort %q lost its identity fields", out[i].ID)
		}
	}
}

func TestRefreshReportsStaleResorts(t *testing.T) {
	svc := newTestService(t, ProviderFunc(func(ctx context.Context, c Coordinates) (RawForecast, error) {
		return fixtureForecast(), nil
	}))

	input := testResorts()
	input[2].Coordinates = nil

	batch := svc.Refresh(context.Background(), input)
	if batch.ID == "" {
		t.Fatalf("expected a batch id")
	}
	if !reflect.DeepEqual(batch.Stale, []string{"three"}) {
		t.Fatalf("expected only %q to be stale, got %v", "three", batch.Stale)
	}
	if !reflect.DeepEqual(batch.Resorts[2], input[2]) {
		t.Fatalf("resort without coordinates should be unchanged")
	}
}

func TestNormalizeAllEmpty(t *testing.T) {
	svc := newTestService(t, nil)
	out := svc.NormalizeAll(context.Background(), nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", out)
	}
}

func TestFetchAllIssuesRequestsConcurrently(t *testing.T) {
	input := testResorts()

	var started sync.WaitGroup
	started.Add(len(input))
	release := make(chan struct{})
	go func() {
		started.Wait()
		close(release)
	}()

	svc := newTestService(t, ProviderFunc(func(ctx context.Context, c Coordinates) (RawForecast, error) {
		started.Done()
		select {
		case <-release:
			return fixtureForecast(), nil
		case <-time.After(2 * time.Second):
			return RawForecast{}, errors.New("fetches were not issued concurrently")
		}
	}))

	for _, o := range svc.FetchAll(context.Background(), input) {
		if o.Err != nil {
			t.Fatalf("resort %q: %v", o.Resort.ID, o.Err)
		}
	}
}

func TestWithSummaryOverlaysWeatherOnly(t *testing.T) {
	r := Resort{
		ID: "vail", Name: "Vail", Location: "Vail, CO", Region: "Colorado",
		BaseSnow: 40, LiftsOpen: 10, TotalLifts: 31, CurrentTemp: 99, Precip24h: 9.9,
	}
	merged := r.WithSummary(expectedSummary())

	if merged.ID != r.ID || merged.BaseSnow != 40 || merged.TotalLifts != 31 {
		t.Fatalf("static fields changed: %+v", merged)
	}
	if merged.CurrentTemp != 24 || merged.Precip24h != 2.0 || merged.HighTemp != 25 {
		t.Fatalf("weather fields not overlaid: %+v", merged)
	}
	if r.CurrentTemp != 99 {
		t.Fatalf("original resort was modified")
	}
}

func TestForecastTotalSnowfall(t *testing.T) {
	f := Forecast{{Snowfall: 1.2}, {Snowfall: 0.1}, {Snowfall: 3.9}}
	if got := f.TotalSnowfall(); got != 5.2 {
		t.Fatalf("got %v, want 5.2", got)
	}
	var none Forecast
	if got := none.TotalSnowfall(); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestResortForecastAbsenceIsSerialized(t *testing.T) {
	body, err := json.Marshal(Resort{ID: "vail"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["dailyForecast"]; !ok || v != nil {
		t.Fatalf("expected dailyForecast to be null, got %v (present=%v)", v, ok)
	}

	raw := fixtureForecast()
	raw.Daily = []DailyReading{}
	body, err = json.Marshal(Resort{ID: "vail"}.WithSummary(Summarize(raw, testNow)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded = nil
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["dailyForecast"].([]any); !ok || len(v) != 0 {
		t.Fatalf("expected an empty dailyForecast array, got %v", decoded["dailyForecast"])
	}
}
