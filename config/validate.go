package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the package validator instance, with custom rules registered in init().
var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("binary", validateBinary); err != nil {
		panic(err)
	}
}

// validateBinary accepts only the values 0 and 1.
func validateBinary(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v == 0. || v == 1.
}

// Validate checks ranges and orderings that the sub-models rely on.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.InitialState.ASW > c.CanopyProduction.MaxASW {
		return fmt.Errorf("invalid configuration: InitialState.initialasw (%g) exceeds CanopyProduction.maxasw (%g)", c.InitialState.ASW, c.CanopyProduction.MaxASW)
	}
	if c.WaterBalance.MinASW > c.CanopyProduction.MaxASW {
		return fmt.Errorf("invalid configuration: WaterBalance.minasw (%g) exceeds CanopyProduction.maxasw (%g)", c.WaterBalance.MinASW, c.CanopyProduction.MaxASW)
	}
	return nil
}
