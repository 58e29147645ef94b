package weather

// MaxWeatherCode is the upper bound of the WMO code space used by Open-Meteo.
const MaxWeatherCode = 99

// codeRange assigns every code in [from, to] to a condition.
type codeRange struct {
	from, to  int
	condition Condition
}

// Codes that fall outside every range below resolve to ConditionPartlyCloudy.
// Reference: https://open-meteo.com/en/docs (WMO weather interpretation codes).
var codeRanges = []codeRange{
	{0, 0, ConditionSunny},        // clear sky
	{1, 2, ConditionPartlyCloudy}, // mainly clear, partly cloudy
	{3, 3, ConditionCloudy},       // overcast
	{45, 45, ConditionCloudy},     // fog
	{48, 48, ConditionCloudy},     // depositing rime fog
	{51, 67, ConditionRaining},    // drizzle, rain, freezing rain
	{71, 77, ConditionSnowing},    // snow fall, snow grains
	{80, 82, ConditionRaining},    // rain showers
	{85, 86, ConditionSnowing},    // snow showers
	{95, 99, ConditionRaining},    // thunderstorm
}

var codeTable = buildCodeTable()

func buildCodeTable() [MaxWeatherCode + 1]Condition {
	var table [MaxWeatherCode + 1]Condition
	for i := range table {
		table[i] = ConditionPartlyCloudy
	}
	for _, r := range codeRanges {
		for code := r.from; code <= r.to; code++ {
			table[code] = r.condition
		}
	}
	return table
}

// MapWeatherCode translates a provider weather code into a domain Condition.
// The mapping is total: codes outside 0-99 map to ConditionPartlyCloudy.
func MapWeatherCode(code int) Condition {
	if code < 0 || code > MaxWeatherCode {
		return ConditionPartlyCloudy
	}
	return codeTable[code]
}

func mapCode(code *int) Condition {
	if code == nil {
		return ConditionPartlyCloudy
	}
	return MapWeatherCode(*code)
}
