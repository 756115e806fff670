package config

// Reference returns a complete, valid calibration for a temperate conifer plantation.
// It backs the "3pg init" template and the package tests.
func Reference() *Config {
	return &Config{
		CanopyProduction: CanopyProduction{
			TMin: 2., TMax: 32., TOpt: 20.,
			CoeffCond: .05,
			MaxASW:    200., SWconst: .7, SWpower: 9.,
			FR: .5, FN0: .6,
			KF:     1.,
			MaxAge: 50., RAge: .95, NAge: 4.,
			FullCanAge: 0., CanPower: .5, K: .5,
			Alpha: .055, Y: .47,
		},
		ShrubEffect: ShrubEffect{
			CounterForShrub: 0., KL: .5, Lsx: 2., ShrubCond: .01,
		},
		BiomassPartition: BiomassPartition{
			TK2: 0., TK3: .05, MaxCond: .02, LAIgcx: 3.33,
			PFS2: 1., PFS20: .15, PRx: .8, PRn: .25, M0: 0.,
			GammaFx: .027, GammaF0: .001, TGammaF: 12., GammaR: .015,
			AFracDiffu: 4.4, BFracRubi: 27., RGcGw: 1.6,
			Ek: 28., Ewc: 27., PexPx: .4, LPeclet: .02,
		},
		WaterBalance: WaterBalance{
			Qa: -90., Qb: .8, BLcond: .2,
			MaxIntcptn: .15, LAImaxIntcptn: 0.,
			MinASW: 0., Irrig: 0.,
		},
		StemMortality: StemMortality{
			WSx1000: 300., ThinPower: 1.5,
			MF: 0., MR: .2, MS: .2,
			SLA0: 11., SLA1: 4., TSLA: 2.5,
			FracBB0: .75, FracBB1: .15, TBB: 2.,
			StemConst: .095, StemPower: 2.4, Density: .45,
			HtC0: 4.8, HtC1: -5.3,
		},
		SiteCharacteristics: SiteCharacteristics{Lat: 45., Elev: 300.},
		TimeRange: TimeRange{
			InitialYear: 2000., InitialMonth: 1.,
			YearPlanted: 2000., MonthPlanted: 1.,
			EndYear: 2010., EndAge: 10.,
		},
		InitialState: InitialState{
			WS: 1., WF: 1., WR: 1., Stocking: 1000., ASW: 200.,
		},
	}
}
