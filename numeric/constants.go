package numeric

const (
	NearZero = 1e-8 // tolerance for mass and water balance checks

	MolPARperMJ = 2.3   // conversion of solar radiation to PAR [mol/MJ]
	GDMperMol   = 24.   // molecular weight of dry matter [gDM/mol]
	MinCond     = .0001 // floor applied to canopy conductance [m/s]

	RhoAir  = 1.2      // density of air [kg/m³]
	Lambda  = 2460000. // latent heat of vapourisation of H2O [J/kg]
	VPDconv = .000622  // convert VPD to saturation deficit = 18/29/1000
	E20     = 2.2      // rate of change of saturated VP with T at 20C

	SecPerDay = 86400.
	Kelvin    = 273.15
)
