// Package validation provides input validation utilities for seiskit
// configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for configuration structs.
//
// # Struct Tag Validation
//
//	type StreamConfig struct {
//	    MaxLength    float64 `validate:"gte=0"`
//	    SamplingRate float64 `validate:"required,gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(rate > 0, "sampling_rate", "must be positive")
//	err := v.Validate()
package validation
