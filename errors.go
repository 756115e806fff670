package threepg

import (
	"errors"
	"fmt"
)

// ErrConfig an inconsistent run configuration
var ErrConfig = errors.New("invalid run configuration")

// MonthError wraps a failure with the month it occurred in.
type MonthError struct {
	Step        int // 1-based simulated month
	Year, Month int // calendar
	StandAge    float64
	Stage       string // climate, canopy, water, biomass, mortality
	Err         error
}

func (e *MonthError) Error() string {
	return fmt.Sprintf("month %d (%d-%02d, age %.3f) %s: %v", e.Step, e.Year, e.Month, e.StandAge, e.Stage, e.Err)
}

func (e *MonthError) Unwrap() error { return e.Err }
