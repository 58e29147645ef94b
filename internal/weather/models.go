package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionSunny        Condition = "sunny"
	ConditionCloudy       Condition = "cloudy"
	ConditionSnowing      Condition = "snowing"
	ConditionRaining      Condition = "raining"
	ConditionWindy        Condition = "windy"
	ConditionPartlyCloudy Condition = "partly-cloudy"
)

// Conditions lists every value of the domain vocabulary.
var Conditions = []Condition{
	ConditionSunny,
	ConditionCloudy,
	ConditionSnowing,
	ConditionRaining,
	ConditionWindy,
	ConditionPartlyCloudy,
}

// Valid reports whether c is one of the six domain conditions.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// Resort is a ski resort as known by the registry. The condition fields hold
// static last-known values until they are overlaid with a WeatherSummary.
type Resort struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Location    string       `json:"location" validate:"required"`
	Region      string       `json:"region" validate:"required"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`

	BaseSnow   int `json:"baseSnow"` // inches
	LiftsOpen  int `json:"liftsOpen" validate:"gte=0,ltefield=TotalLifts"`
	TotalLifts int `json:"totalLifts" validate:"gte=0"`

	CurrentTemp      int       `json:"currentTemp"` // °F
	HighTemp         int       `json:"highTemp"`
	LowTemp          int       `json:"lowTemp"`
	WeatherCondition Condition `json:"weatherCondition"`
	Precip24h        float64   `json:"precip24h"` // inches
	Precip48h        float64   `json:"precip48h"`
	UVIndex          int       `json:"uvIndex"`
	WindSpeed        int       `json:"windSpeed"` // mph
	DailyForecast    Forecast  `json:"dailyForecast"`
}

// WithSummary returns a copy of r with every weather field replaced by the
// values of s. Identity and static metadata are kept.
func (r Resort) WithSummary(s WeatherSummary) Resort {
	r.CurrentTemp = s.CurrentTemp
	r.HighTemp = s.HighTemp
	r.LowTemp = s.LowTemp
	r.WeatherCondition = s.WeatherCondition
	r.Precip24h = s.Precip24h
	r.Precip48h = s.Precip48h
	r.UVIndex = s.UVIndex
	r.WindSpeed = s.WindSpeed
	r.DailyForecast = s.DailyForecast
	return r
}

// WeatherSummary is the normalized view derived from a single provider
// response. It carries no resort identity; callers merge it by id.
type WeatherSummary struct {
	CurrentTemp      int       `json:"currentTemp"`
	WeatherCondition Condition `json:"weatherCondition"`
	Precip24h        float64   `json:"precip24h"`
	Precip48h        float64   `json:"precip48h"`
	HighTemp         int       `json:"highTemp"`
	LowTemp          int       `json:"lowTemp"`
	UVIndex          int       `json:"uvIndex"`
	WindSpeed        int       `json:"windSpeed"`

	// DailyForecast is nil when the provider returned no daily section.
	DailyForecast Forecast `json:"dailyForecast"`
}

// DailyForecast is one day of the forecast series.
type DailyForecast struct {
	Date             string    `json:"date"` // YYYY-MM-DD
	Snowfall         float64   `json:"snowfall"`
	TempHigh         int       `json:"tempHigh"`
	TempLow          int       `json:"tempLow"`
	WeatherCondition Condition `json:"weatherCondition"`
	WindSpeed        int       `json:"windSpeed"`
}

// Forecast is a chronological series of daily forecasts, first entry today.
type Forecast []DailyForecast

// TotalSnowfall sums the forecast snowfall in inches, rounded to one decimal.
func (f Forecast) TotalSnowfall() float64 {
	var total float64
	for _, day := range f {
		total += day.Snowfall
	}
	return RoundTenth(total)
}
