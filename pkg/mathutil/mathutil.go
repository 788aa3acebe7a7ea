// Package mathutil holds the rounding rules shared by the stored and the summary stats.
package mathutil

import "math"

// Round rounds to the given number of decimal places, exact ties go to the even digit.
func Round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.RoundToEven(value*factor) / factor
}

// KDA returns (kills+assists)/deaths rounded to 2 places, or kills+assists when deaths is zero.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return Round(float64(kills+assists)/float64(deaths), 2)
}
