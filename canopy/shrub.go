package canopy

import "math"

// ShrubMode understorey competition state. The transition OpenCanopy -> ClosedCanopy is one-way.
type ShrubMode int

const (
	OpenCanopy ShrubMode = iota
	ClosedCanopy
)

func (m ShrubMode) String() string {
	switch m {
	case OpenCanopy:
		return "open"
	case ClosedCanopy:
		return "closed"
	default:
		return "unknown"
	}
}

// ShrubModeFromCounter maps the control-file counter (0/1) to a ShrubMode.
func ShrubModeFromCounter(c float64) ShrubMode {
	if c >= 1. {
		return ClosedCanopy
	}
	return OpenCanopy
}

// shrubLAI returns the understorey leaf area and the next mode.
func shrubLAI(mode ShrubMode, lai, kl, lsx, k float64) (float64, ShrubMode) {
	lsOpen := lai * kl
	lsClosed := lsx * math.Exp(-k*lai)
	var ls float64
	switch mode {
	case ClosedCanopy:
		ls = lsClosed
	default:
		ls = math.Min(lsOpen, lsClosed)
	}
	if lsClosed <= lsOpen {
		mode = ClosedCanopy
	}
	return ls, mode
}
