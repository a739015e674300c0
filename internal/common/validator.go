package common

import "fmt"

// ValidationError carries one message per offending field. It is returned
// by value so handlers can match it with errors.As.
type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

// Validator accumulates field checks before any store mutation happens.
// The first failure recorded for a field wins; later checks on the same
// field are ignored.
type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

// Check records message under field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// ValidationError freezes the collected failures into an error value.
func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
