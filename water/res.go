package water

// res soil water store [mm]
type res struct {
	sto float64
	cap float64
}

// draw removes up to d from the store and returns the amount removed.
func (r *res) draw(d float64) float64 {
	if d <= 0. {
		return 0.
	}
	if d > r.sto {
		d = r.sto
	}
	r.sto -= d
	return d
}

// overflow spills any storage above capacity and returns the excess.
func (r *res) overflow() float64 {
	if r.sto > r.cap {
		d := r.sto - r.cap
		r.sto = r.cap
		return d
	}
	return 0.
}

// topup raises the store to min, returning the water added.
func (r *res) topup(min float64) float64 {
	if r.sto < min {
		d := min - r.sto
		r.sto = min
		return d
	}
	return 0.
}
