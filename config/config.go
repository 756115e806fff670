// Package config holds the typed calibration set of a stand run.
package config

// Config immutable calibration and control settings for a single stand run
type Config struct {
	CanopyProduction    CanopyProduction
	ShrubEffect         ShrubEffect
	BiomassPartition    BiomassPartition
	WaterBalance        WaterBalance
	StemMortality       StemMortality
	SiteCharacteristics SiteCharacteristics
	TimeRange           TimeRange
	InitialState        InitialState
	Output              Output
	IO                  IO
}

// CanopyProduction light use and growth modifier constants
type CanopyProduction struct {
	TMin       float64
	TMax       float64 `validate:"gtfield=TOpt"`
	TOpt       float64 `validate:"gtfield=TMin"`
	CoeffCond  float64 `validate:"gte=0"`
	MaxASW     float64 `validate:"gt=0"` // maximum available soil water [mm]
	SWconst    float64 `validate:"gt=0"`
	SWpower    float64 `validate:"gt=0"`
	FR         float64 `validate:"gte=0,lte=1"` // fertility rating
	FN0        float64 `validate:"gte=0,lte=1"`
	KF         float64 `validate:"gte=0"`
	MaxAge     float64 `validate:"gt=0"`
	RAge       float64 `validate:"gt=0"`
	NAge       float64 `validate:"gt=0"`
	FullCanAge float64 `validate:"gte=0"`
	CanPower   float64 `validate:"gte=0"`
	K          float64 `validate:"gt=0"`       // extinction coefficient
	Alpha      float64 `validate:"gt=0"`       // canopy quantum efficiency [molC/molPAR]
	Y          float64 `validate:"gt=0,lte=1"` // ratio NPP/GPP
}

// ShrubEffect understorey leaf area competition
type ShrubEffect struct {
	CounterForShrub float64 `validate:"binary"` // 0: open canopy, 1: closed canopy
	KL              float64 `validate:"gte=0"`
	Lsx             float64 `validate:"gte=0"`
	ShrubCond       float64 `validate:"gte=0"` // maximum shrub canopy conductance [m/s]
}

// BiomassPartition allocation, turnover, conductance and isotope constants
type BiomassPartition struct {
	TK2     float64
	TK3     float64
	MaxCond float64 `validate:"gt=0"`
	LAIgcx  float64 `validate:"gt=0"`

	PFS2    float64 `validate:"gt=0"`
	PFS20   float64 `validate:"gt=0"`
	PRx     float64 `validate:"gt=0,lte=1"`
	PRn     float64 `validate:"gt=0,lte=1"`
	M0      float64 `validate:"gte=0,lte=1"`
	GammaFx float64 `validate:"gte=0,lte=1"`
	GammaF0 float64 `validate:"gt=0,lte=1"`
	TGammaF float64 `validate:"gt=0"`
	GammaR  float64 `validate:"gte=0,lte=1"`

	AFracDiffu float64 // fractionation against 13C by diffusion [‰]
	BFracRubi  float64 // fractionation by Rubisco [‰]
	RGcGw      float64 `validate:"gt=0"` // ratio of water to CO2 conductance
	Ek         float64 // kinetic fractionation [‰]
	Ewc        float64 // water-cellulose fractionation [‰]
	PexPx      float64 `validate:"gte=0,lte=1"`
	LPeclet    float64 `validate:"gt=0"` // effective path length [m]
}

// WaterBalance Penman-Monteith and soil bucket constants
type WaterBalance struct {
	Qa            float64
	Qb            float64
	BLcond        float64 `validate:"gt=0"` // boundary layer conductance [m/s]
	MaxIntcptn    float64 `validate:"gte=0,lte=1"`
	LAImaxIntcptn float64 `validate:"gte=0"`
	MinASW        float64 `validate:"gte=0"`
	Irrig         float64 `validate:"gte=0"` // scheduled irrigation [mm/month]
}

// StemMortality self-thinning and allometry constants
type StemMortality struct {
	WSx1000   float64 `validate:"gt=0"`
	ThinPower float64 `validate:"gt=0"`
	MF        float64 `validate:"gte=0,lte=1"`
	MR        float64 `validate:"gte=0,lte=1"`
	MS        float64 `validate:"gte=0,lte=1"`
	SLA0      float64 `validate:"gt=0"`
	SLA1      float64 `validate:"gt=0"`
	TSLA      float64 `validate:"gt=0"`
	FracBB0   float64 `validate:"gte=0,lt=1"`
	FracBB1   float64 `validate:"gte=0,lt=1"`
	TBB       float64 `validate:"gt=0"`
	StemConst float64 `validate:"gt=0"`
	StemPower float64 `validate:"gt=0"`
	Density   float64 `validate:"gt=0"`
	HtC0      float64
	HtC1      float64
}

// SiteCharacteristics location of the stand
type SiteCharacteristics struct {
	Lat  float64 `validate:"gte=-90,lte=90"`
	Elev float64
}

// TimeRange simulation period
type TimeRange struct {
	InitialYear  float64
	InitialMonth float64 `validate:"gte=1,lte=12"`
	YearPlanted  float64
	MonthPlanted float64 `validate:"gte=1,lte=12"`
	EndYear      float64
	EndAge       float64 `validate:"gte=0"`
	FirstRow     float64 `validate:"gte=-1"` // climate row read by the first simulated month; -1: from InitialMonth
}

// ClimateRow the climate row read by simulated month k (k >= 1). When FirstRow is
// negative the table is indexed by InitialMonth, so month k reads row InitialMonth+k.
func (tr *TimeRange) ClimateRow(k int) int {
	if tr.FirstRow < 0. {
		return int(tr.InitialMonth) + k
	}
	return int(tr.FirstRow) + k - 1
}

// InitialState literal stand values at the start of the run
type InitialState struct {
	WS       float64 `validate:"gte=0"`
	WF       float64 `validate:"gte=0"`
	WR       float64 `validate:"gte=0"`
	Stocking float64 `validate:"gt=0"`
	ASW      float64 `validate:"gte=0"`
}

// Output selects the columns written; empty means all.
type Output struct {
	Variables []string
}

// IO file locations, resolved relative to the control file
type IO struct {
	Input  string
	Output string
}
