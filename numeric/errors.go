package numeric

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned (wrapped) whenever a computation leaves its numeric domain.
var ErrDomain = errors.New("numeric domain error")

// DomainError names the offending quantity.
type DomainError struct {
	Quantity string
	Value    float64
	Reason   string
}

func (e *DomainError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s = %g", e.Quantity, e.Value)
	}
	return fmt.Sprintf("%s = %g: %s", e.Quantity, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// Domain builds a *DomainError.
func Domain(quantity string, v float64, reason string) error {
	return &DomainError{Quantity: quantity, Value: v, Reason: reason}
}

// Finite checks name/value pairs and returns a DomainError for the first NaN or Inf.
func Finite(pairs ...any) error {
	if len(pairs)%2 != 0 {
		panic("numeric.Finite: odd number of arguments")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		v, ok := pairs[i+1].(float64)
		if !ok {
			panic(fmt.Sprintf("numeric.Finite: %q is not a float64", name))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Domain(name, v, "not finite")
		}
	}
	return nil
}
