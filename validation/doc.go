// Package validation validates configuration structs with
// go-playground/validator struct tags.
//
//	type ClientConfig struct {
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// Failures are returned as *Error listing each offending field by its
// mapstructure key.
package validation
