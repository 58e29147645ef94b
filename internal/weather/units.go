package weather

import "math"

const inchesPerCm = 0.393701

// RoundInt rounds half away from zero to the nearest integer.
func RoundInt(x float64) int {
	return int(math.Round(x))
}

// RoundTenth rounds half away from zero to one decimal place.
func RoundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// CmToInches converts a depth in centimetres to inches with one decimal.
func CmToInches(cm float64) float64 {
	return RoundTenth(cm * inchesPerCm)
}
