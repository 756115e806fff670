// Package biomass allocates net production to foliage, root and stem pools and
// estimates the carbon and oxygen isotope signatures of new tissue.
package biomass

import (
	"fmt"
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"github.com/xiaxiaoyunyl36/3PG-model/numeric"
)

// Input production, pools and drivers for one month
type Input struct {
	TAv, LAI, Elev          float64
	CO2, D13Catm, D18Osrc   float64
	WF, WR, WS, TotalLitter float64 // [tDM/ha]
	NPP, GPPmolC            float64
	StandAge                float64
	Month                   int
	AvDBH                   float64 // [cm]
	FPhys, VPD              float64
	CanopyConductance       float64 // [m/s]
	CanopyTranspirationSec  float64 // [kg/m²/s]
}

// Result updated pools and isotope diagnostics
type Result struct {
	WF, WR, WS, TotalW, TotalLitter float64
	DelWF, DelWR, DelWS             float64
	Litterfall, RootTurnover        float64 // [tDM/ha/month]
	PF, PR, PS                      float64 // allocation fractions
	Isotopes
}

// Fractions 3-PG allocation of NPP to foliage, roots and stem
func Fractions(dbh, fPhys float64, bp *config.BiomassPartition, fr float64) (pF, pR, pS float64) {
	pfsPower := math.Log(bp.PFS20/bp.PFS2) / math.Log(10.)
	pfsConst := bp.PFS2 / math.Pow(2., pfsPower)
	pFS := pfsConst * math.Pow(dbh, pfsPower)
	m := bp.M0 + (1.-bp.M0)*fr
	pR = bp.PRx * bp.PRn / (bp.PRn + (bp.PRx-bp.PRn)*fPhys*m)
	pS = (1. - pR) / (1. + pFS)
	pF = 1. - pR - pS
	return
}

// LitterfallRate monthly foliage turnover, rising with age from gammaF0 to gammaFx.
func LitterfallRate(standAge float64, bp *config.BiomassPartition) float64 {
	kgammaF := 12. * math.Log(1.+bp.GammaFx/bp.GammaF0) / bp.TGammaF
	return bp.GammaFx * bp.GammaF0 / (bp.GammaF0 + (bp.GammaFx-bp.GammaF0)*math.Exp(-kgammaF*standAge))
}

// Partition runs the biomass partition sub-model.
func Partition(in Input, c *config.Config) (Result, error) {
	if !forcing.ValidMonth(in.Month) {
		return Result{}, fmt.Errorf("biomass.Partition: invalid month %d", in.Month)
	}
	bp := &c.BiomassPartition

	var r Result
	r.PF, r.PR, r.PS = Fractions(in.AvDBH, in.FPhys, bp, c.CanopyProduction.FR)
	r.Litterfall = LitterfallRate(in.StandAge, bp) * in.WF
	r.RootTurnover = bp.GammaR * in.WR

	r.DelWF = in.NPP*r.PF - r.Litterfall
	r.DelWR = in.NPP*r.PR - r.RootTurnover
	r.DelWS = in.NPP * r.PS
	r.WF = in.WF + r.DelWF
	r.WR = in.WR + r.DelWR
	r.WS = in.WS + r.DelWS
	r.TotalW = r.WF + r.WR + r.WS
	r.TotalLitter = in.TotalLitter + r.Litterfall

	if err := numeric.Finite("pF", r.PF, "pR", r.PR, "pS", r.PS, "WF", r.WF, "WR", r.WR, "WS", r.WS); err != nil {
		return Result{}, fmt.Errorf("biomass.Partition: %w", err)
	}
	for _, p := range []struct {
		n string
		v float64
	}{{"WF", r.WF}, {"WR", r.WR}, {"WS", r.WS}} {
		if p.v < 0. {
			return Result{}, fmt.Errorf("biomass.Partition: %w", numeric.Domain(p.n, p.v, "pool would become negative"))
		}
	}

	// mass conservation
	if d := r.DelWF + r.DelWR + r.DelWS - (in.NPP - r.Litterfall - r.RootTurnover); math.Abs(d) > numeric.NearZero {
		return Result{}, fmt.Errorf("biomass.Partition: %w", numeric.Domain("mass balance residual", d, "allocation does not conserve NPP"))
	}

	iso, err := isotopes(in, bp, forcing.DaysInMonth(in.Month))
	if err != nil {
		return Result{}, fmt.Errorf("biomass.Partition: %w", err)
	}
	r.Isotopes = iso
	return r, nil
}
