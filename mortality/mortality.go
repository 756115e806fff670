// Package mortality applies the self-thinning rule and recomputes stand structure.
package mortality

import (
	"fmt"
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/numeric"
)

// Stand the quantities the sub-model reads and rewrites
type Stand struct {
	WF, WR, WS float64
	StemNo     float64
	DelStemNo  float64 // cumulative stems removed
	StandAge   float64
}

// Result updated stand and derived structure
type Result struct {
	Stand
	AvStemMass float64 // [kg/tree]
	LAI        float64
	MAI        float64
	AvDBH      float64 // [cm]
	BasArea    float64 // [m²/ha]
	Height     float64 // [m]
	StandVol   float64 // [m³/ha]
	SLA        float64
	FracBB     float64
	WSmax      float64
	DelStems   float64 // stems removed this month
	Thinned    bool
	Solve      Solve
}

// AgeFactors specific leaf area and branch+bark fraction at standAge
func AgeFactors(standAge float64, sm *config.StemMortality) (sla, fracBB float64) {
	sla = sm.SLA1 + (sm.SLA0-sm.SLA1)*math.Exp(-math.Ln2*math.Pow(standAge/sm.TSLA, 2.))
	fracBB = sm.FracBB1 + (sm.FracBB0-sm.FracBB1)*math.Exp(-math.Ln2*(standAge/sm.TBB))
	return
}

// Height Wykoff (1982) height [m] from DBH [cm]; the equation is in feet and inches.
func Height(avDBH, htc0, htc1 float64) float64 {
	return (math.Exp(htc0+htc1/(avDBH/2.54+1.)) + 4.5) * .3048
}

// Structure derived stand variables from pools, stocking and age
type Structure struct {
	LAI, MAI, AvStemMass, AvDBH, BasArea, Height, StandVol float64
}

// Derive recomputes stand structure. StemNo must be positive.
func Derive(standAge, wf, ws, stemNo, sla, fracBB float64, sm *config.StemMortality) (Structure, error) {
	if stemNo <= 0. {
		return Structure{}, numeric.Domain("StemNo", stemNo, "no stems left")
	}
	var s Structure
	s.AvStemMass = ws * 1000. / stemNo // [kg/tree]
	s.LAI = wf * sla * .1
	s.AvDBH = math.Pow(s.AvStemMass/sm.StemConst, 1./sm.StemPower)
	s.BasArea = math.Pow(s.AvDBH/200., 2.) * math.Pi * stemNo
	s.StandVol = ws * (1. - fracBB) / sm.Density
	if standAge > 0. {
		s.MAI = s.StandVol / standAge
	}
	s.Height = Height(s.AvDBH, sm.HtC0, sm.HtC1)
	if err := numeric.Finite("avDBH", s.AvDBH, "Height", s.Height, "StandVol", s.StandVol); err != nil {
		return Structure{}, err
	}
	return s, nil
}

// Update advances stand age by one month, applies self-thinning and recomputes structure.
func Update(st Stand, c *config.Config) (Result, error) {
	sm := &c.StemMortality
	if st.StemNo <= 0. {
		return Result{}, fmt.Errorf("mortality.Update: %w", numeric.Domain("StemNo", st.StemNo, "no stems left"))
	}

	var r Result
	r.Stand = st
	r.StandAge = st.StandAge + 1./12.

	r.WSmax = sm.WSx1000 * math.Pow(1000./st.StemNo, sm.ThinPower)
	avStemMass := st.WS * 1000. / st.StemNo
	if r.WSmax < avStemMass {
		s, err := GetMortality(st.StemNo, st.WS, sm.MS, sm.WSx1000, sm.ThinPower)
		if err != nil {
			return Result{}, fmt.Errorf("mortality.Update: %w", err)
		}
		if s.Removed >= st.StemNo {
			return Result{}, fmt.Errorf("mortality.Update: %w", numeric.Domain("stems removed", s.Removed, fmt.Sprintf("self-thinning would remove all %g stems", st.StemNo)))
		}
		r.Thinned, r.Solve, r.DelStems = true, s, s.Removed
		r.WF = st.WF - sm.MF*s.Removed*(st.WF/st.StemNo)
		r.WR = st.WR - sm.MR*s.Removed*(st.WR/st.StemNo)
		r.WS = st.WS - sm.MS*s.Removed*(st.WS/st.StemNo)
	}
	r.StemNo = st.StemNo - r.DelStems
	r.DelStemNo = st.DelStemNo + r.DelStems

	r.SLA, r.FracBB = AgeFactors(r.StandAge, sm)
	d, err := Derive(r.StandAge, r.WF, r.WS, r.StemNo, r.SLA, r.FracBB, sm)
	if err != nil {
		return Result{}, fmt.Errorf("mortality.Update: %w", err)
	}
	r.AvStemMass, r.LAI, r.MAI, r.AvDBH, r.BasArea, r.Height, r.StandVol = d.AvStemMass, d.LAI, d.MAI, d.AvDBH, d.BasArea, d.Height, d.StandVol
	return r, nil
}
