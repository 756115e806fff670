package mortality

import (
	"math"

	"github.com/xiaxiaoyunyl36/3PG-model/numeric"
)

const (
	accuracy = 1. / 1000. // one stem, with n in thousands
	maxIter  = 5
)

// Solve outcome of the self-thinning Newton-Raphson solve
type Solve struct {
	Removed    float64 // stems to remove, truncated and never negative
	N          float64 // final iterate [thousand stems/ha]
	Iterations int
	Converged  bool
}

// GetMortality finds the number of stems to remove so that the self-thinning rule is satisfied,
// solving wSx1000·n^(1-thinPower) - x1·n - (1-mS)·oldW = 0 for n by Newton-Raphson.
// The iteration count is capped at five; an unconverged iterate is returned as-is with Converged false.
func GetMortality(oldN, oldW, mS, wSx1000, thinPower float64) (Solve, error) {
	if oldN <= 0. {
		return Solve{}, numeric.Domain("StemNo", oldN, "no stems left")
	}
	n := oldN / 1000.
	x1 := 1000. * mS * oldW / oldN
	var s Solve
	for {
		s.Iterations++
		x2 := wSx1000 * math.Pow(n, 1.-thinPower)
		fN := x2 - x1*n - (1.-mS)*oldW
		dfN := (1.-thinPower)*x2/n - x1
		dN := -fN / dfN
		n += dN
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Solve{}, numeric.Domain("thinning iterate n", n, "Newton-Raphson left the real domain")
		}
		if math.Abs(dN) <= accuracy {
			s.Converged = true
			break
		}
		if s.Iterations >= maxIter {
			break
		}
	}
	s.N = n
	s.Removed = math.Max(0., math.Trunc(oldN-1000.*n))
	return s, nil
}
