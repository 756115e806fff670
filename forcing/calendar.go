package forcing

import "math"

var daysInMonth = [12]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// mid-month day of year
var midDOY = [12]float64{17, 47, 75, 105, 135, 162, 198, 228, 258, 288, 318, 344}

// DaysInMonth non-leap day count for calendar month 1-12
func DaysInMonth(month int) float64 {
	return daysInMonth[month-1]
}

// DayLength mean daylight seconds for calendar month 1-12 at latitude lat [°].
func DayLength(lat float64, month int) float64 {
	sLat := math.Sin(math.Pi * lat / 180.)
	cLat := math.Cos(math.Pi * lat / 180.)
	sinDec := .4 * math.Sin(.0172*(midDOY[month-1]-80.))
	cosH0 := -sinDec * sLat / (cLat * math.Sqrt(1.-sinDec*sinDec))
	switch {
	case cosH0 > 1.:
		return 0.
	case cosH0 < -1.:
		return 86400.
	default:
		return 86400. * math.Acos(cosH0) / math.Pi
	}
}

// ValidMonth reports whether m is a calendar month.
func ValidMonth(m int) bool { return m >= 1 && m <= 12 }
