package modifier

// Set the seven modifiers computed for one month
type Set struct {
	Temperature, VPD, SoilWater, Nutrition, Frost, Age, Physiological float64
}

// Slice returns the modifiers in their reporting order.
func (s Set) Slice() []float64 {
	return []float64{s.Temperature, s.VPD, s.SoilWater, s.Nutrition, s.Frost, s.Age, s.Physiological}
}
