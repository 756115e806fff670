package threepg

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Annual calendar-year totals and means of simulated months
type Annual struct {
	Year, Months                     int
	NPP, GPPdm                       float64 // [tDM/ha/yr]
	Transp, Rain, Runoff, Irrigation float64 // [mm/yr]
	MeanLAI, MeanASW                 float64
	StemNo, WS, StandVol, Height     float64 // at year end
	Thinnings                        int
}

// Summarize groups records by calendar year. The initial-state record is skipped.
func Summarize(recs []Record) []Annual {
	var o []Annual
	for i := 0; i < len(recs); {
		if recs[i].Step == 0 {
			i++
			continue
		}
		j := i
		for j < len(recs) && recs[j].Year == recs[i].Year {
			j++
		}
		o = append(o, annual(recs[i:j]))
		i = j
	}
	return o
}

func annual(rs []Record) Annual {
	col := func(f func(*Record) float64) []float64 {
		v := make([]float64, len(rs))
		for i := range rs {
			v[i] = f(&rs[i])
		}
		return v
	}
	last := &rs[len(rs)-1]
	a := Annual{
		Year:       rs[0].Year,
		Months:     len(rs),
		NPP:        floats.Sum(col(func(r *Record) float64 { return r.NPP })),
		GPPdm:      floats.Sum(col(func(r *Record) float64 { return r.GPPdm })),
		Transp:     floats.Sum(col(func(r *Record) float64 { return r.Transp })),
		Rain:       floats.Sum(col(func(r *Record) float64 { return r.Rain })),
		Runoff:     floats.Sum(col(func(r *Record) float64 { return r.Runoff })),
		Irrigation: floats.Sum(col(func(r *Record) float64 { return r.Irrigation })),
		MeanLAI:    stat.Mean(col(func(r *Record) float64 { return r.LAI }), nil),
		MeanASW:    stat.Mean(col(func(r *Record) float64 { return r.ASW }), nil),
		StemNo:     last.StemNo,
		WS:         last.WS,
		StandVol:   last.StandVol,
		Height:     last.Height,
	}
	for i := range rs {
		if rs[i].ThinningIterations > 0 {
			a.Thinnings++
		}
	}
	return a
}

// PrintSummary writes a fixed-width table of annual summaries.
func PrintSummary(w io.Writer, as []Annual) {
	fmt.Fprintf(w, "%6s %3s %9s %9s %9s %9s %9s %7s %8s %9s %9s %7s %4s\n",
		"year", "n", "npp", "gppdm", "transp", "rain", "runoff", "lai", "asw", "stemno", "standvol", "height", "thin")
	for _, a := range as {
		fmt.Fprintf(w, "%6d %3d %9.3f %9.3f %9.1f %9.1f %9.1f %7.3f %8.1f %9.1f %9.2f %7.2f %4d\n",
			a.Year, a.Months, a.NPP, a.GPPdm, a.Transp, a.Rain, a.Runoff, a.MeanLAI, a.MeanASW, a.StemNo, a.StandVol, a.Height, a.Thinnings)
	}
}
