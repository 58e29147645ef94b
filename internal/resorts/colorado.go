package resorts

import "github.com/i474232898/snow-report/internal/weather"

const Colorado = "Colorado"

// colorado holds the static resort table. The condition values are the
// last-known figures shown when live data cannot be fetched.
var colorado = []weather.Resort{
	{
		ID: "vail", Name: "Vail", Location: "Vail, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.6403, Lon: -106.3742}, BaseSnow: 42, LiftsOpen: 28, TotalLifts: 31,
		CurrentTemp: 24, HighTemp: 31, LowTemp: 14, WeatherCondition: weather.ConditionSnowing,
		Precip24h: 4.5, Precip48h: 8.0, UVIndex: 2, WindSpeed: 12,
	},
	{
		ID: "breckenridge", Name: "Breckenridge", Location: "Breckenridge, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.4817, Lon: -106.0384}, BaseSnow: 48, LiftsOpen: 32, TotalLifts: 35,
		CurrentTemp: 19, HighTemp: 27, LowTemp: 9, WeatherCondition: weather.ConditionSnowing,
		Precip24h: 6.0, Precip48h: 10.5, UVIndex: 1, WindSpeed: 15,
	},
	{
		ID: "keystone", Name: "Keystone", Location: "Keystone, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.6045, Lon: -105.9498}, BaseSnow: 38, LiftsOpen: 18, TotalLifts: 20,
		CurrentTemp: 22, HighTemp: 30, LowTemp: 12, WeatherCondition: weather.ConditionCloudy,
		Precip24h: 2.0, Precip48h: 5.5, UVIndex: 2, WindSpeed: 8,
	},
	{
		ID: "copper-mountain", Name: "Copper Mountain", Location: "Frisco, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.5022, Lon: -106.1497}, BaseSnow: 44, LiftsOpen: 21, TotalLifts: 24,
		CurrentTemp: 20, HighTemp: 28, LowTemp: 11, WeatherCondition: weather.ConditionPartlyCloudy,
		Precip24h: 3.0, Precip48h: 6.5, UVIndex: 3, WindSpeed: 10,
	},
	{
		ID: "arapahoe-basin", Name: "Arapahoe Basin", Location: "Dillon, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.6425, Lon: -105.8719}, BaseSnow: 40, LiftsOpen: 8, TotalLifts: 9,
		CurrentTemp: 16, HighTemp: 24, LowTemp: 6, WeatherCondition: weather.ConditionWindy,
		Precip24h: 1.5, Precip48h: 4.0, UVIndex: 2, WindSpeed: 25,
	},
	{
		ID: "winter-park", Name: "Winter Park", Location: "Winter Park, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.8868, Lon: -105.7625}, BaseSnow: 50, LiftsOpen: 20, TotalLifts: 23,
		CurrentTemp: 18, HighTemp: 26, LowTemp: 8, WeatherCondition: weather.ConditionSnowing,
		Precip24h: 5.0, Precip48h: 9.0, UVIndex: 1, WindSpeed: 14,
	},
	{
		ID: "steamboat", Name: "Steamboat", Location: "Steamboat Springs, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 40.4572, Lon: -106.8045}, BaseSnow: 55, LiftsOpen: 16, TotalLifts: 18,
		CurrentTemp: 21, HighTemp: 29, LowTemp: 10, WeatherCondition: weather.ConditionSnowing,
		Precip24h: 7.0, Precip48h: 12.0, UVIndex: 1, WindSpeed: 9,
	},
	{
		ID: "aspen-snowmass", Name: "Aspen Snowmass", Location: "Snowmass Village, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.2084, Lon: -106.9490}, BaseSnow: 46, LiftsOpen: 19, TotalLifts: 21,
		CurrentTemp: 26, HighTemp: 34, LowTemp: 15, WeatherCondition: weather.ConditionSunny,
		Precip24h: 0.0, Precip48h: 2.5, UVIndex: 4, WindSpeed: 6,
	},
	{
		ID: "telluride", Name: "Telluride", Location: "Telluride, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 37.9375, Lon: -107.8123}, BaseSnow: 36, LiftsOpen: 16, TotalLifts: 19,
		CurrentTemp: 28, HighTemp: 36, LowTemp: 17, WeatherCondition: weather.ConditionSunny,
		Precip24h: 0.0, Precip48h: 1.0, UVIndex: 5, WindSpeed: 5,
	},
	{
		ID: "loveland", Name: "Loveland", Location: "Georgetown, CO", Region: Colorado,
		Coordinates: &weather.Coordinates{Lat: 39.6800, Lon: -105.8979}, BaseSnow: 41, LiftsOpen: 9, TotalLifts: 10,
		CurrentTemp: 15, HighTemp: 23, LowTemp: 5, WeatherCondition: weather.ConditionCloudy,
		Precip24h: 2.5, Precip48h: 5.0, UVIndex: 2, WindSpeed: 18,
	},
}

// Default returns the registry of Colorado resorts.
func Default() *Registry {
	r, err := New(colorado)
	if err != nil {
		// The table is compiled in; a failure here is a programming error.
		panic(err)
	}
	return r
}
