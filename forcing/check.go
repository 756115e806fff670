package forcing

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary annual-average statistics of a climate table
type Summary struct {
	Months                 int
	MeanTAv, MinTAv, MaxTAv float64
	MeanVPD                float64
	AnnualRain             float64 // [mm/yr]
	MeanSolarRad           float64
	AnnualFrostDays        float64
	MeanCO2                float64
}

// Summarize computes a Summary; an empty table returns the zero Summary.
func (t *Table) Summarize() Summary {
	n := len(t.Rows)
	if n == 0 {
		return Summary{}
	}
	tav, vpd, rain, rad, frost, co2 := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, m := range t.Rows {
		tav[i] = m.TAv
		vpd[i] = m.VPD
		rain[i] = m.Rain
		rad[i] = m.SolarRad
		frost[i] = m.FrostDays
		co2[i] = m.CO2
	}
	f := 12. / float64(n)
	return Summary{
		Months:          n,
		MeanTAv:         stat.Mean(tav, nil),
		MinTAv:          floats.Min(tav),
		MaxTAv:          floats.Max(tav),
		MeanVPD:         stat.Mean(vpd, nil),
		AnnualRain:      floats.Sum(rain) * f,
		MeanSolarRad:    stat.Mean(rad, nil),
		AnnualFrostDays: floats.Sum(frost) * f,
		MeanCO2:         stat.Mean(co2, nil),
	}
}

// CheckAndPrint writes a short summary of the table to w.
func (t *Table) CheckAndPrint(w io.Writer) {
	fmt.Fprintln(w, "Climate summary:")
	s := t.Summarize()
	if s.Months == 0 {
		fmt.Fprintln(w, " (empty)")
		return
	}
	fmt.Fprintf(w, " %d months (%.1f years)\n", s.Months, float64(s.Months)/12.)
	fmt.Fprintf(w, " Tav (°C): mean %.2f  min %.2f  max %.2f\n", s.MeanTAv, s.MinTAv, s.MaxTAv)
	fmt.Fprintf(w, " VPD (kPa): %.3f   solar rad (MJ/m²/d): %.2f   CO2 (ppm): %.1f\n", s.MeanVPD, s.MeanSolarRad, s.MeanCO2)
	fmt.Fprintf(w, " totals (/yr): rain %.1f mm   frost %.1f days\n", s.AnnualRain, s.AnnualFrostDays)
}
