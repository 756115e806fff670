package threepg

import (
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/biomass"
	"github.com/xiaxiaoyunyl36/3PG-model/canopy"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"github.com/xiaxiaoyunyl36/3PG-model/mortality"
	"github.com/xiaxiaoyunyl36/3PG-model/water"
	"go.uber.org/zap"
)

// month advances st by simulated month k (1-based).
func (m *Model) month(st *Stand, k int) (Record, error) {
	c := m.cfg
	year, month := calendar(c, k)
	fail := func(stage string, err error) (Record, error) {
		return Record{}, &MonthError{Step: k, Year: year, Month: month, StandAge: st.StandAge, Stage: stage, Err: err}
	}

	clim, err := m.clim.At(c.TimeRange.ClimateRow(k))
	if err != nil {
		return fail("climate", err)
	}
	dayLength := forcing.DayLength(c.SiteCharacteristics.Lat, month)

	cp, err := canopy.Produce(canopy.Input{
		TAv:       clim.TAv,
		VPD:       clim.VPD,
		ASW:       st.ASW,
		FrostDays: math.Trunc(clim.FrostDays),
		StandAge:  st.StandAge,
		LAI:       st.LAI,
		SolarRad:  clim.SolarRad,
		Month:     month,
		ShrubMode: st.ShrubMode,
	}, c)
	if err != nil {
		return fail("canopy", err)
	}

	wb, err := water.Balance(water.Input{
		SolarRad:          clim.SolarRad,
		VPD:               clim.VPD,
		DayLength:         dayLength,
		LAI:               st.LAI,
		Rain:              clim.Rain,
		Irrigation:        c.WaterBalance.Irrig,
		Month:             month,
		ASW:               st.ASW,
		CanopyConductance: cp.CanopyConductance,
		LAIShrub:          cp.LAIShrub,
	}, c)
	if err != nil {
		return fail("water", err)
	}

	bm, err := biomass.Partition(biomass.Input{
		TAv:                    clim.TAv,
		LAI:                    st.LAI,
		Elev:                   c.SiteCharacteristics.Elev,
		CO2:                    clim.CO2,
		D13Catm:                clim.D13Catm,
		D18Osrc:                clim.D18Osrc,
		WF:                     st.WF,
		WR:                     st.WR,
		WS:                     st.WS,
		TotalLitter:            st.TotalLitter,
		NPP:                    cp.NPP,
		GPPmolC:                cp.GPPmolC,
		StandAge:               st.StandAge,
		Month:                  month,
		AvDBH:                  st.AvDBH,
		FPhys:                  cp.Modifiers.Physiological,
		VPD:                    clim.VPD,
		CanopyConductance:      cp.CanopyConductance,
		CanopyTranspirationSec: wb.CanopyTranspirationSec,
	}, c)
	if err != nil {
		return fail("biomass", err)
	}

	mr, err := mortality.Update(mortality.Stand{
		WF:        bm.WF,
		WR:        bm.WR,
		WS:        bm.WS,
		StemNo:    st.StemNo,
		DelStemNo: st.DelStemNo,
		StandAge:  st.StandAge,
	}, c)
	if err != nil {
		return fail("mortality", err)
	}

	// commit
	st.StandAge = mr.StandAge
	st.StemNo, st.DelStemNo = mr.StemNo, mr.DelStemNo
	st.WF, st.WR, st.WS = mr.WF, mr.WR, mr.WS
	st.TotalLitter = bm.TotalLitter
	st.ASW = wb.ASW
	st.ShrubMode = cp.ShrubMode
	st.setStructure(mortality.Structure{
		LAI:        mr.LAI,
		MAI:        mr.MAI,
		AvStemMass: mr.AvStemMass,
		AvDBH:      mr.AvDBH,
		BasArea:    mr.BasArea,
		Height:     mr.Height,
		StandVol:   mr.StandVol,
	})

	r := st.record(k, year, month)
	r.DelWF, r.DelWR, r.DelWS = bm.DelWF, bm.DelWR, bm.DelWS
	r.PAR, r.APAR, r.APARu, r.GPPdm, r.NPP = cp.PAR, cp.APAR, cp.APARu, cp.GPPdm, cp.NPP
	r.Modifiers, r.LAIShrub = cp.Modifiers, cp.LAIShrub
	r.CanopyConductance = cp.CanopyConductance
	r.Transp, r.LossWater, r.CanopyTranspirationSec = wb.Transp, wb.LossWater, wb.CanopyTranspirationSec
	r.Rain, r.Runoff, r.Irrigation = clim.Rain, wb.Runoff, wb.Irrigation
	r.D13CTissue, r.InterCiPPM = bm.D13CTissue, bm.InterCiPPM
	r.D18OLeaf, r.D18OCell, r.D18OCellPeclet, r.Peclet = bm.D18OLeaf, bm.D18OCell, bm.D18OCellPeclet, bm.Peclet
	if mr.Thinned {
		r.ThinningIterations, r.ThinningConverged = mr.Solve.Iterations, mr.Solve.Converged
	}

	m.log.Debug("month",
		zap.Int("step", k),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Float64("npp", r.NPP),
		zap.Float64("asw", r.ASW),
		zap.Float64("stemno", r.StemNo),
	)
	if !r.ThinningConverged {
		m.log.Warn("self-thinning did not converge",
			zap.Int("step", k),
			zap.Int("iterations", r.ThinningIterations),
			zap.Float64("stems_removed", mr.DelStems),
		)
	}
	m.met.month(&r, mr.Thinned)
	return r, nil
}
