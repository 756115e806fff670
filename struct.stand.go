package threepg

import (
	"github.com/xiaxiaoyunyl36/3PG-model/canopy"
)

// Stand the mutable state carried from month to month
type Stand struct {
	StandAge float64 // [yr]

	// structure
	StemNo, DelStemNo float64 // [stems/ha]
	AvStemMass        float64 // [kg/tree]
	AvDBH             float64 // [cm]
	BasArea           float64 // [m²/ha]
	Height            float64 // [m]
	StandVol, MAI     float64 // [m³/ha], [m³/ha/yr]
	LAI               float64

	// pools [tDM/ha]
	WF, WR, WS, TotalLitter float64

	ASW float64 // [mm]

	ShrubMode canopy.ShrubMode
}
