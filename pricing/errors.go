package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNoPricingAvailable  = errors.New("no pricing available for rental period")
	ErrInvalidRentalPeriod = errors.New("rental period must be at least one day")
	ErrValidation          = errors.New("validation failed")
)

// ValidationError carries field level details of rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.add(field, message)
	return v
}

// NoPricingError reports that no tier of an equipment covers the requested period.
type NoPricingError struct {
	EquipmentID uint
	Days        int
}

func (e *NoPricingError) Error() string {
	return fmt.Sprintf("%s: equipment %d, %d days", ErrNoPricingAvailable.Error(), e.EquipmentID, e.Days)
}

func (e *NoPricingError) Is(target error) bool {
	return target == ErrNoPricingAvailable
}
