package threepg

import (
	"fmt"
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/canopy"
	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/mortality"
)

// Horizon returns the stand age at the start of the run and the number of months to simulate.
func Horizon(c *config.Config) (age0 float64, months int, err error) {
	tr := &c.TimeRange
	start := tr.InitialYear + (tr.InitialMonth-1.)/12.
	planted := tr.YearPlanted + (tr.MonthPlanted-1.)/12.
	age0 = start - planted
	if age0 < 0. {
		return 0., 0, fmt.Errorf("%w: stand planted (%g-%02d) after the run starts (%g-%02d)", ErrConfig, tr.YearPlanted, int(tr.MonthPlanted), tr.InitialYear, int(tr.InitialMonth))
	}
	months = int(math.Round((tr.EndAge - age0) * 12.))
	if months < 0 {
		months = 0
	}
	return
}

// NewStand builds the stand from the literal initial values of the configuration.
func NewStand(c *config.Config) (Stand, error) {
	age0, _, err := Horizon(c)
	if err != nil {
		return Stand{}, err
	}
	is, sm := &c.InitialState, &c.StemMortality
	st := Stand{
		StandAge:  age0,
		StemNo:    is.Stocking,
		WF:        is.WF,
		WR:        is.WR,
		WS:        is.WS,
		ASW:       is.ASW,
		ShrubMode: canopy.ShrubModeFromCounter(c.ShrubEffect.CounterForShrub),
	}
	sla, fracBB := mortality.AgeFactors(age0, sm)
	d, err := mortality.Derive(age0, st.WF, st.WS, st.StemNo, sla, fracBB, sm)
	if err != nil {
		return Stand{}, fmt.Errorf("initial stand: %w", err)
	}
	st.setStructure(d)
	return st, nil
}

func (st *Stand) setStructure(d mortality.Structure) {
	st.LAI, st.MAI, st.AvStemMass, st.AvDBH = d.LAI, d.MAI, d.AvStemMass, d.AvDBH
	st.BasArea, st.Height, st.StandVol = d.BasArea, d.Height, d.StandVol
}

// calendar returns the calendar year and month of simulated step k (k=0 is the initial state).
func calendar(c *config.Config, k int) (year, month int) {
	mi := int(c.TimeRange.InitialMonth) - 1 + k
	return int(c.TimeRange.InitialYear) + mi/12, mi%12 + 1
}
