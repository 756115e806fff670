package biomass

import (
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/numeric"
)

const (
	molWater = 55.5e3 // molar concentration of water [mol/m³]
	mwWater  = .018   // [kg/mol]
)

// Isotopes carbon and oxygen isotope diagnostics of new tissue [‰]
type Isotopes struct {
	D13CTissue     float64
	InterCiPPM     float64 // intercellular CO2 [ppm]
	D18OLeaf       float64
	D18OCell       float64
	D18OCellPeclet float64
	Peclet         float64
}

// InterCellularCO2 [ppm] from canopy conductance to water g [m/s] and monthly GPP [mol/m²].
func InterCellularCO2(ca, gppMolC, g, tav, elev, rgcgw, days float64) float64 {
	p := 101.3 * math.Exp(-elev/8200.) // [kPa]
	gMol := g * 44.6 * (numeric.Kelvin / (numeric.Kelvin + tav)) * (p / 101.3)
	gCO2 := gMol / rgcgw
	a := gppMolC * 1e6 / (days * numeric.SecPerDay) // [µmol/m²/s]
	return math.Max(0., ca-a/gCO2)
}

// Discrimination 13C discrimination (Farquhar) [‰]
func Discrimination(ci, ca, a, b float64) float64 {
	return a + (b-a)*ci/ca
}

// equilibrium liquid-vapour fractionation of 18O [‰] (Majoube 1971)
func equilibrium(tk float64) float64 {
	return (math.Exp(1.137e3/(tk*tk)-.4156/tk-2.0667e-3) - 1.) * 1000.
}

// saturation vapour pressure [kPa]
func esat(t float64) float64 {
	return .6108 * math.Exp(17.27*t/(t+237.3))
}

func isotopes(in Input, bp *config.BiomassPartition, days float64) (Isotopes, error) {
	var o Isotopes

	// carbon
	if in.CO2 > 0. {
		o.InterCiPPM = InterCellularCO2(in.CO2, in.GPPmolC, in.CanopyConductance, in.TAv, in.Elev, bp.RGcGw, days)
		d := Discrimination(o.InterCiPPM, in.CO2, bp.AFracDiffu, bp.BFracRubi)
		o.D13CTissue = (in.D13Catm - d) / (1. + d/1000.)
	}

	// oxygen: Craig-Gordon leaf water enrichment with vapour in equilibrium with source
	tk := in.TAv + numeric.Kelvin
	es := esat(in.TAv)
	h := math.Min(1., math.Max(0., (es-in.VPD)/es))
	eStar := equilibrium(tk)
	de := eStar + bp.Ek + (-eStar-bp.Ek)*h
	o.D18OLeaf = in.D18Osrc + de

	// Péclet effect
	dL := de
	if in.LAI > 0. && in.CanopyTranspirationSec > 0. {
		e := in.CanopyTranspirationSec / in.LAI / mwWater // [mol/m²leaf/s]
		dif := 119e-9 * math.Exp(-637./(tk-137.))        // [m²/s]
		o.Peclet = e * bp.LPeclet / (molWater * dif)
		dL = de * (1. - math.Exp(-o.Peclet)) / o.Peclet
	}
	o.D18OCell = in.D18Osrc + de*(1.-bp.PexPx) + bp.Ewc
	o.D18OCellPeclet = in.D18Osrc + dL*(1.-bp.PexPx) + bp.Ewc

	if err := numeric.Finite("InterCiPPM", o.InterCiPPM, "D13CTissue", o.D13CTissue, "d18Oleaf", o.D18OLeaf, "d18Ocell_peclet", o.D18OCellPeclet); err != nil {
		return Isotopes{}, err
	}
	return o, nil
}
