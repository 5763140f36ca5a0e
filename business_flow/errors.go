// Package businessflow contains the use cases of the rental catalog, quotes, needs assessments and the public API
package businessflow

import (
	"errors"
	"fmt"

	"github.com/amirphl/ppp-rental/pricing"
)

// Business flow error constants
var (
	// Catalog errors
	ErrCategoryNotFound            = errors.New("equipment category not found")
	ErrCategoryAlreadyExists       = errors.New("equipment category already exists")
	ErrEquipmentNotFound           = errors.New("equipment not found")
	ErrEquipmentInUse              = errors.New("equipment is referenced by quote items")
	ErrEquipmentAdditionalNotFound = errors.New("equipment additional not found")
	ErrPricingTierNotFound         = errors.New("pricing tier not found")
	ErrServiceItemNotFound         = errors.New("service item not found")
	ErrServiceCostsNotFound        = errors.New("service costs not found")
	ErrQuantityExceedsTotal        = errors.New("available quantity exceeds total quantity")
	ErrPricingSchemaNotFound       = errors.New("pricing schema not found")

	// Quote errors
	ErrQuoteNotFound                = errors.New("quote not found")
	ErrQuoteItemNotFound            = errors.New("quote item not found")
	ErrClientNotFound               = errors.New("client not found")
	ErrClientRequired               = errors.New("client id or client data is required")
	ErrConcurrentNumberingCollision = errors.New("concurrent numbering collision")
	ErrNumberingLockBusy            = errors.New("numbering lock is busy")

	// Pricing errors
	ErrNoPricingAvailable = pricing.ErrNoPricingAvailable
	ErrValidation         = pricing.ErrValidation

	// Needs assessment errors
	ErrAssessmentNotFound = errors.New("needs assessment not found")
	ErrQuestionNotFound   = errors.New("needs assessment question not found")

	// API key errors
	ErrAPIKeyNotFound   = errors.New("api key not found")
	ErrAPIKeyInactive   = errors.New("api key is inactive")
	ErrAPIKeyForbidden  = errors.New("api key lacks the required permission")
	ErrCacheUnavailable = errors.New("cache not available")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// newValidationError wraps a single field violation.
func newValidationError(field, message string) *BusinessError {
	return NewBusinessError("VALIDATION_ERROR", "Validation failed", pricing.NewValidationError(field, message))
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ValidationFields returns the field violations carried by err, if any.
func ValidationFields(err error) map[string]string {
	var v *pricing.ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}
	return nil
}

func IsNoPricingAvailable(err error) bool {
	return errors.Is(err, ErrNoPricingAvailable)
}

func IsConcurrentNumberingCollision(err error) bool {
	return errors.Is(err, ErrConcurrentNumberingCollision)
}

func IsNumberingLockBusy(err error) bool {
	return errors.Is(err, ErrNumberingLockBusy)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsCategoryAlreadyExists(err error) bool {
	return errors.Is(err, ErrCategoryAlreadyExists)
}

func IsEquipmentNotFound(err error) bool {
	return errors.Is(err, ErrEquipmentNotFound)
}

func IsEquipmentInUse(err error) bool {
	return errors.Is(err, ErrEquipmentInUse)
}

func IsEquipmentAdditionalNotFound(err error) bool {
	return errors.Is(err, ErrEquipmentAdditionalNotFound)
}

func IsPricingTierNotFound(err error) bool {
	return errors.Is(err, ErrPricingTierNotFound)
}

func IsServiceItemNotFound(err error) bool {
	return errors.Is(err, ErrServiceItemNotFound)
}

func IsQuantityExceedsTotal(err error) bool {
	return errors.Is(err, ErrQuantityExceedsTotal)
}

func IsPricingSchemaNotFound(err error) bool {
	return errors.Is(err, ErrPricingSchemaNotFound)
}

func IsQuoteNotFound(err error) bool {
	return errors.Is(err, ErrQuoteNotFound)
}

func IsQuoteItemNotFound(err error) bool {
	return errors.Is(err, ErrQuoteItemNotFound)
}

func IsClientNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound)
}

func IsAssessmentNotFound(err error) bool {
	return errors.Is(err, ErrAssessmentNotFound)
}

func IsQuestionNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound)
}

func IsAPIKeyNotFound(err error) bool {
	return errors.Is(err, ErrAPIKeyNotFound)
}

func IsAPIKeyInactive(err error) bool {
	return errors.Is(err, ErrAPIKeyInactive)
}

func IsAPIKeyForbidden(err error) bool {
	return errors.Is(err, ErrAPIKeyForbidden)
}

// IsNotFound reports whether err is any of the not found conditions.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrCategoryNotFound, ErrEquipmentNotFound, ErrEquipmentAdditionalNotFound,
		ErrPricingTierNotFound, ErrServiceItemNotFound, ErrServiceCostsNotFound,
		ErrPricingSchemaNotFound, ErrQuoteNotFound, ErrQuoteItemNotFound,
		ErrClientNotFound, ErrAssessmentNotFound, ErrQuestionNotFound, ErrAPIKeyNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports conditions that conflict with the current state of a resource.
func IsConflict(err error) bool {
	return IsConcurrentNumberingCollision(err) || IsNumberingLockBusy(err) ||
		IsCategoryAlreadyExists(err) || IsEquipmentInUse(err)
}
