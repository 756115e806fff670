// Package canopy computes light interception, canopy conductance and primary production.
package canopy

import (
	"fmt"
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"github.com/xiaxiaoyunyl36/3PG-model/modifier"
	"github.com/xiaxiaoyunyl36/3PG-model/numeric"
)

// Input monthly drivers and current stand state
type Input struct {
	TAv, VPD, ASW, FrostDays float64
	StandAge, LAI, SolarRad  float64
	Month                    int
	ShrubMode                ShrubMode
}

// Production canopy production for one month
type Production struct {
	PAR, APAR, APARu  float64 // [mol/m²]
	GPPmolC           float64 // [mol/m²]
	GPPdm, NPP        float64 // [tDM/ha]
	Modifiers         modifier.Set
	LAIShrub          float64
	ShrubMode         ShrubMode
	CanopyConductance float64 // [m/s]
	CanopyCover       float64
	LightInterception float64
}

// Modifiers computes the seven growth modifiers.
func Modifiers(in Input, c *config.Config) modifier.Set {
	cp := &c.CanopyProduction
	var s modifier.Set
	s.Temperature = modifier.Temperature(in.TAv, cp.TMin, cp.TMax, cp.TOpt)
	s.VPD = modifier.VPD(in.VPD, cp.CoeffCond)
	s.SoilWater = modifier.SoilWater(in.ASW, cp.MaxASW, cp.SWconst, cp.SWpower)
	s.Nutrition = modifier.Nutrition(cp.FR, cp.FN0)
	s.Frost = modifier.Frost(in.FrostDays, cp.KF)
	s.Age = modifier.Age(in.StandAge, cp.MaxAge, cp.RAge, cp.NAge)
	s.Physiological = modifier.Physiological(s.VPD, s.SoilWater, s.Age)
	return s
}

// Cover canopy cover and Beer-Lambert light interception
func Cover(standAge, lai, fullCanAge, canPower, k float64) (cover, interception float64) {
	cover = 1.
	if fullCanAge > 0. && standAge < fullCanAge {
		cover = math.Pow(standAge/fullCanAge, canPower)
	}
	interception = 1. - math.Exp(-k*lai)
	return
}

// Conductance canopy conductance [m/s]. A non-positive value is replaced by numeric.MinCond.
func Conductance(tav, lai, fFrost, fPhys, tk2, tk3, maxCond, laigcx float64) float64 {
	g := math.Max(0., math.Min(1., tk2+tk3*tav)) * maxCond * fFrost * fPhys * math.Min(1., lai/laigcx)
	if g <= 0. {
		g = numeric.MinCond
	}
	return g
}

// Produce runs the canopy production sub-model.
func Produce(in Input, c *config.Config) (Production, error) {
	if !forcing.ValidMonth(in.Month) {
		return Production{}, fmt.Errorf("canopy.Produce: invalid month %d", in.Month)
	}
	cp, bp, sh := &c.CanopyProduction, &c.BiomassPartition, &c.ShrubEffect

	var p Production
	p.Modifiers = Modifiers(in, c)
	m := p.Modifiers

	p.CanopyCover, p.LightInterception = Cover(in.StandAge, in.LAI, cp.FullCanAge, cp.CanPower, cp.K)
	p.CanopyConductance = Conductance(in.TAv, in.LAI, m.Frost, m.Physiological, bp.TK2, bp.TK3, bp.MaxCond, bp.LAIgcx)

	rad := in.SolarRad * forcing.DaysInMonth(in.Month) // [MJ/m²]
	p.PAR = rad * numeric.MolPARperMJ
	p.APAR = p.PAR * p.LightInterception * p.CanopyCover
	p.APARu = p.APAR * m.Physiological
	alphaC := cp.Alpha * m.Nutrition * m.Temperature * m.Frost
	p.GPPmolC = p.APARu * alphaC
	p.GPPdm = p.GPPmolC * numeric.GDMperMol / 100.
	p.NPP = p.GPPdm * cp.Y // constant respiratory fraction

	p.LAIShrub, p.ShrubMode = shrubLAI(in.ShrubMode, in.LAI, sh.KL, sh.Lsx, cp.K)

	if err := numeric.Finite(
		"modifier_temperature", m.Temperature,
		"modifier_soilwater", m.SoilWater,
		"modifier_age", m.Age,
		"canopy_cover", p.CanopyCover,
		"canopy_conductance", p.CanopyConductance,
		"GPPmolC", p.GPPmolC,
		"NPP", p.NPP,
		"LAIShrub", p.LAIShrub,
	); err != nil {
		return Production{}, fmt.Errorf("canopy.Produce: %w", err)
	}
	return p, nil
}
