// Package validation provides input validation utilities for envguard.
//
// It wraps a shared go-playground/validator instance for single-value
// format checks (email, URL, host) used by the built-in validators, struct
// tag validation used for schema definitions, and a programmatic Validator
// that collects field errors.
//
// # Format Checks
//
//	err := validation.Var("ops@example.com", "email")
//
// # Struct Tag Validation
//
//	type Definition struct {
//	    Name string `yaml:"name" validate:"required"`
//	}
//	err := validation.Validate(def)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(def.Optional && def.TestOnly != nil, "optional", "conflicts with test_only")
//	err := v.Validate()
package validation
