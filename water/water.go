// Package water computes monthly transpiration, rainfall interception and the soil water balance.
package water

import (
	"fmt"
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"github.com/xiaxiaoyunyl36/3PG-model/numeric"
)

// Input monthly drivers and the state entering the month
type Input struct {
	SolarRad, VPD, DayLength float64
	LAI, Rain, Irrigation    float64
	Month                    int
	ASW                      float64
	CanopyConductance        float64
	LAIShrub                 float64
}

// Result monthly water fluxes [mm/month] and the updated store
type Result struct {
	TranspAll, Transp, TranspShrub float64
	LossWater                      float64 // transpiration plus interception
	ASW                            float64
	Irrigation                     float64 // scheduled plus MinASW top-up
	CanopyTranspirationSec         float64 // tree transpiration rate [kg/m²/s]
	Interception, Runoff           float64
}

// PenmanMonteith latent heat flux [W/m²] for conductance g [m/s] during daylight.
func PenmanMonteith(g, solarRad, vpd, dayLength, qa, qb, blcond float64) float64 {
	if dayLength <= 0. {
		return 0.
	}
	netRad := qa + qb*(solarRad*1e6/dayLength)
	defTerm := numeric.RhoAir * numeric.Lambda * (numeric.VPDconv * vpd) * blcond
	div := g*(1.+numeric.E20) + blcond
	return math.Max(0., g*(numeric.E20*netRad+defTerm)/div)
}

// ShrubConductance understorey conductance [m/s], floored like the tree canopy.
func ShrubConductance(laiShrub, shrubCond, laigcx float64) float64 {
	g := shrubCond * math.Min(1., laiShrub/laigcx)
	if g <= 0. {
		g = numeric.MinCond
	}
	return g
}

// Interception fraction of rainfall held on foliage
func Interception(lai, maxIntcptn, laiMaxIntcptn float64) float64 {
	if laiMaxIntcptn <= 0. {
		return maxIntcptn
	}
	return maxIntcptn * math.Min(1., lai/laiMaxIntcptn)
}

// Balance runs the water balance sub-model. The returned ASW always lies in [0, MaxASW].
func Balance(in Input, c *config.Config) (Result, error) {
	if !forcing.ValidMonth(in.Month) {
		return Result{}, fmt.Errorf("water.Balance: invalid month %d", in.Month)
	}
	if in.Rain < 0. || in.Irrigation < 0. {
		return Result{}, fmt.Errorf("water.Balance: %w", numeric.Domain("rain", in.Rain, "negative water input"))
	}
	wb, maxASW := &c.WaterBalance, c.CanopyProduction.MaxASW
	days := forcing.DaysInMonth(in.Month)

	// potential transpiration
	le := PenmanMonteith(in.CanopyConductance, in.SolarRad, in.VPD, in.DayLength, wb.Qa, wb.Qb, wb.BLcond)
	gs := ShrubConductance(in.LAIShrub, c.ShrubEffect.ShrubCond, c.BiomassPartition.LAIgcx)
	les := PenmanMonteith(gs, in.SolarRad, in.VPD, in.DayLength, wb.Qa, wb.Qb, wb.BLcond)
	var r Result
	r.CanopyTranspirationSec = le / numeric.Lambda
	r.Transp = days * r.CanopyTranspirationSec * in.DayLength
	r.TranspShrub = days * les / numeric.Lambda * in.DayLength

	r.Interception = in.Rain * Interception(in.LAI, wb.MaxIntcptn, wb.LAImaxIntcptn)

	s := res{sto: in.ASW, cap: maxASW}
	s.sto += in.Rain - r.Interception + in.Irrigation

	// transpiration limited by available water
	if demand := r.Transp + r.TranspShrub; demand > 0. {
		got := s.draw(demand)
		if got < demand {
			f := got / demand
			r.Transp *= f
			r.TranspShrub *= f
			r.CanopyTranspirationSec *= f
		}
	}
	r.TranspAll = r.Transp + r.TranspShrub

	r.Irrigation = in.Irrigation + s.topup(wb.MinASW)
	r.Runoff = s.overflow()
	r.ASW = s.sto
	r.LossWater = r.TranspAll + r.Interception

	if err := numeric.Finite("transp", r.Transp, "transp_shrub", r.TranspShrub, "ASW", r.ASW); err != nil {
		return Result{}, fmt.Errorf("water.Balance: %w", err)
	}
	wbal := in.ASW + in.Rain + r.Irrigation - (r.ASW + r.TranspAll + r.Interception + r.Runoff)
	if math.Abs(wbal) > numeric.NearZero*math.Max(1., in.ASW+in.Rain) {
		return Result{}, fmt.Errorf("water.Balance: %w", numeric.Domain("water balance residual", wbal, "monthly water budget does not close"))
	}
	return r, nil
}
