// Package modifier holds the dimensionless growth modifiers of 3-PG.
// Each is a pure function of its inputs and calibration constants; calibration
// validity (e.g. tmin < topt < tmax) is checked when the configuration is loaded.
package modifier

import "math"

// Temperature returns 0 outside (tmin, tmax), otherwise a skewed bell curve peaking at topt.
func Temperature(tav, tmin, tmax, topt float64) float64 {
	if tav <= tmin || tav >= tmax {
		return 0.
	}
	return ((tav - tmin) / (topt - tmin)) * math.Pow((tmax-tav)/(tmax-topt), (tmax-topt)/(topt-tmin))
}

// VPD vapour pressure deficit modifier
func VPD(vpd, coeffCond float64) float64 {
	return math.Exp(-coeffCond * vpd)
}

// SoilWater is a logistic function of the moisture ratio asw/maxASW.
func SoilWater(asw, maxASW, swConst, swPower float64) float64 {
	mr := asw / maxASW
	return 1. / (1. + math.Pow((1.-mr)/swConst, swPower))
}

// Nutrition interpolates linearly between fN0 (fr=0) and 1 (fr=1).
func Nutrition(fr, fN0 float64) float64 {
	return fN0 + (1.-fN0)*fr
}

// Frost is 1-kF·days/30. It is left unclamped and goes negative when kF·days > 30.
func Frost(frostDays, kF float64) float64 {
	return 1. - kF*(frostDays/30.)
}

// Age decreasing sigmoid in relative stand age
func Age(standAge, maxAge, rAge, nAge float64) float64 {
	ra := standAge / maxAge
	return 1. / (1. + math.Pow(ra/rAge, nAge))
}

// Physiological gates photosynthetic capacity and conductance.
func Physiological(fVPD, fSoilWater, fAge float64) float64 {
	return math.Min(fVPD, fSoilWater) * fAge
}
