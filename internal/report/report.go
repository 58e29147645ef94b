// Package report orders and renders normalized resort records for display.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/i474232898/snow-report/internal/weather"
)

// SortKey selects the display order of a resort list.
type SortKey string

const (
	SortByTemperature SortKey = "temp"
	SortByName        SortKey = "name"
	SortBySnowfall    SortKey = "snow"
)

// Sort returns a sorted copy of resorts. Temperature order is coldest first,
// snowfall order is deepest 24h first; ties keep registry order.
func Sort(resorts []weather.Resort, key SortKey) []weather.Resort {
	out := make([]weather.Resort, len(resorts))
	copy(out, resorts)

	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortBySnowfall:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Precip24h > out[j].Precip24h
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CurrentTemp < out[j].CurrentTemp
		})
	}
	return out
}

// ConditionLabel formats a condition the way the dashboard cards show it.
func ConditionLabel(c weather.Condition) string {
	return strings.ToUpper(strings.ReplaceAll(string(c), "-", " "))
}

// WriteTable renders one line per resort.
func WriteTable(w io.Writer, resorts []weather.Resort) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RESORT\tTEMP\tHI/LO\tCONDITIONS\t24H\t48H\tBASE\tUV\tWIND\t7-DAY")
	for _, r := range resorts {
		fmt.Fprintf(tw, "%s\t%d°F\t%d/%d\t%s\t%.1f\"\t%.1f\"\t%d\"\t%d\t%d mph\t%.1f\"\n",
			r.Name,
			r.CurrentTemp,
			r.HighTemp, r.LowTemp,
			ConditionLabel(r.WeatherCondition),
			r.Precip24h,
			r.Precip48h,
			r.BaseSnow,
			r.UVIndex,
			r.WindSpeed,
			r.DailyForecast.TotalSnowfall(),
		)
	}
	return tw.Flush()
}

// WriteForecast renders the daily forecast of a single resort.
func WriteForecast(w io.Writer, r weather.Resort) error {
	if len(r.DailyForecast) == 0 {
		_, err := fmt.Fprintf(w, "%s: no forecast data\n", r.Name)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)\n", r.Name, r.Location)
	fmt.Fprintln(tw, "DATE\tSNOW\tHI/LO\tCONDITIONS\tWIND")
	for _, d := range r.DailyForecast {
		fmt.Fprintf(tw, "%s\t%.1f\"\t%d/%d\t%s\t%d mph\n",
			d.Date, d.Snowfall, d.TempHigh, d.TempLow, ConditionLabel(d.WeatherCondition), d.WindSpeed)
	}
	fmt.Fprintf(tw, "TOTAL\t%.1f\"\n", r.DailyForecast.TotalSnowfall())
	return tw.Flush()
}
