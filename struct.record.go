package threepg

import (
	"fmt"
	"strings"

	"github.com/xiaxiaoyunyl36/3PG-model/canopy"
	"github.com/xiaxiaoyunyl36/3PG-model/modifier"
)

// RecordVersion bumps whenever a column is added, removed or renamed.
const RecordVersion = 1

// Record the full state vector after one simulated month. Step 0 is the initial state.
type Record struct {
	Step        int
	Year, Month int

	StandAge                     float64
	LAI, MAI, BasArea, Height    float64
	AvDBH, StandVol, StemNo      float64
	AvStemMass                   float64
	WF, WR, WS, TotalLitter      float64
	DelWF, DelWR, DelWS          float64
	PAR, APAR, APARu, GPPdm, NPP float64
	ASW, Transp, LossWater       float64
	Rain, Runoff, Irrigation     float64
	CanopyConductance            float64 // [m/s]
	CanopyTranspirationSec       float64 // [kg/m²/s]
	D13CTissue, InterCiPPM       float64
	D18OLeaf, D18OCell           float64
	D18OCellPeclet, Peclet       float64
	LAIShrub                     float64
	Modifiers                    modifier.Set
	ShrubMode                    canopy.ShrubMode
	ThinningIterations           int
	ThinningConverged            bool
}

// Column a named accessor into Record
type Column struct {
	Name  string
	Value func(*Record) float64
}

func b2f(b bool) float64 {
	if b {
		return 1.
	}
	return 0.
}

// Columns every output variable, in file order
var Columns = []Column{
	{"year", func(r *Record) float64 { return float64(r.Year) }},
	{"month", func(r *Record) float64 { return float64(r.Month) }},
	{"stand_age", func(r *Record) float64 { return r.StandAge }},
	{"lai", func(r *Record) float64 { return r.LAI }},
	{"mai", func(r *Record) float64 { return r.MAI }},
	{"basarea", func(r *Record) float64 { return r.BasArea }},
	{"height", func(r *Record) float64 { return r.Height }},
	{"d13ctissue", func(r *Record) float64 { return r.D13CTissue }},
	{"modifier_physiology", func(r *Record) float64 { return r.Modifiers.Physiological }},
	{"npp", func(r *Record) float64 { return r.NPP }},
	{"asw", func(r *Record) float64 { return r.ASW }},
	{"transp", func(r *Record) float64 { return r.Transp }},
	{"loss_water", func(r *Record) float64 { return r.LossWater }},
	{"standvol", func(r *Record) float64 { return r.StandVol }},
	{"stemno", func(r *Record) float64 { return r.StemNo }},
	{"par", func(r *Record) float64 { return r.PAR }},
	{"intercippm", func(r *Record) float64 { return r.InterCiPPM }},
	{"wf", func(r *Record) float64 { return r.WF }},
	{"ws", func(r *Record) float64 { return r.WS }},
	{"wr", func(r *Record) float64 { return r.WR }},
	{"avstemmass", func(r *Record) float64 { return r.AvStemMass }},
	{"delwf", func(r *Record) float64 { return r.DelWF }},
	{"delwr", func(r *Record) float64 { return r.DelWR }},
	{"delws", func(r *Record) float64 { return r.DelWS }},
	{"d18oleaf", func(r *Record) float64 { return r.D18OLeaf }},
	{"d18ocell", func(r *Record) float64 { return r.D18OCell }},
	{"d18ocell_peclet", func(r *Record) float64 { return r.D18OCellPeclet }},
	{"avdbh", func(r *Record) float64 { return r.AvDBH }},
	{"canopy_conductance", func(r *Record) float64 { return r.CanopyConductance }},
	{"canopy_transpiration_sec", func(r *Record) float64 { return r.CanopyTranspirationSec }},
	{"l", func(r *Record) float64 { return r.Peclet }},
	{"gppdm", func(r *Record) float64 { return r.GPPdm }},
	{"totallitter", func(r *Record) float64 { return r.TotalLitter }},
	{"apar", func(r *Record) float64 { return r.APAR }},
	{"aparu", func(r *Record) float64 { return r.APARu }},
	{"laishrub", func(r *Record) float64 { return r.LAIShrub }},
	{"shrub_mode", func(r *Record) float64 { return float64(r.ShrubMode) }},
	{"modifier_temperature", func(r *Record) float64 { return r.Modifiers.Temperature }},
	{"modifier_vpd", func(r *Record) float64 { return r.Modifiers.VPD }},
	{"modifier_soilwater", func(r *Record) float64 { return r.Modifiers.SoilWater }},
	{"modifier_nutrition", func(r *Record) float64 { return r.Modifiers.Nutrition }},
	{"modifier_frost", func(r *Record) float64 { return r.Modifiers.Frost }},
	{"modifier_age", func(r *Record) float64 { return r.Modifiers.Age }},
	{"rain", func(r *Record) float64 { return r.Rain }},
	{"runoff", func(r *Record) float64 { return r.Runoff }},
	{"irrigation", func(r *Record) float64 { return r.Irrigation }},
	{"thinning_iterations", func(r *Record) float64 { return float64(r.ThinningIterations) }},
	{"thinning_converged", func(r *Record) float64 { return b2f(r.ThinningConverged) }},
}

// Select returns the columns named, in the order given. An empty list selects all.
func Select(names []string) ([]Column, error) {
	if len(names) == 0 {
		return Columns, nil
	}
	idx := make(map[string]int, len(Columns))
	for i, c := range Columns {
		idx[c.Name] = i
	}
	o := make([]Column, 0, len(names))
	for _, n := range names {
		i, ok := idx[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown output variable %q", ErrConfig, n)
		}
		o = append(o, Columns[i])
	}
	return o, nil
}

// Values evaluates cols against r.
func (r *Record) Values(cols []Column) []float64 {
	o := make([]float64, len(cols))
	for i, c := range cols {
		o[i] = c.Value(r)
	}
	return o
}

func (st *Stand) record(step, year, month int) Record {
	return Record{
		Step:              step,
		Year:              year,
		Month:             month,
		StandAge:          st.StandAge,
		LAI:               st.LAI,
		MAI:               st.MAI,
		BasArea:           st.BasArea,
		Height:            st.Height,
		AvDBH:             st.AvDBH,
		StandVol:          st.StandVol,
		StemNo:            st.StemNo,
		AvStemMass:        st.AvStemMass,
		WF:                st.WF,
		WR:                st.WR,
		WS:                st.WS,
		TotalLitter:       st.TotalLitter,
		ASW:               st.ASW,
		ShrubMode:         st.ShrubMode,
		ThinningConverged: true,
	}
}
