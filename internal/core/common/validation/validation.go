package validation

import (
	"fmt"
	"unicode/utf8"

	errors "github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/shopspring/decimal"
)

const MaxDescriptionLength = 500

// MaxAmount is the largest value a numeric(14,2) column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationFieldError(fv.FieldName, message, code)
}

// Required rejects absent values. Pointers are absent when nil, strings
// and dates when empty.
func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		missing := false
		switch v := value.(type) {
		case string:
			missing = v == ""
		case *string:
			missing = v == nil
		case *decimal.Decimal:
			missing = v == nil
		case datetime.Date:
			missing = v.IsZero()
		case *datetime.Date:
			missing = v == nil || v.IsZero()
		case category.Category:
			missing = v == ""
		case *category.Category:
			missing = v == nil || *v == ""
		case datetime.Month:
			missing = v == ""
		case nil:
			missing = true
		}
		if missing {
			return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeRequiredField)
		}
		return nil
	})
	return fv
}

// Positive requires a decimal strictly greater than zero. Nil pointers
// are skipped.
func (fv *FieldValidator) Positive() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			d = *v
		default:
			return nil
		}
		if !d.IsPositive() {
			return fv.fail(fmt.Sprintf("%s must be greater than 0", fv.FieldName), errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

// Money rejects amounts with more than two decimal places or above
// MaxAmount. Nil pointers are skipped.
func (fv *FieldValidator) Money() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			d = *v
		default:
			return nil
		}
		if !d.Equal(d.Truncate(2)) {
			return fv.fail(fmt.Sprintf("%s must have at most 2 decimal places", fv.FieldName), errors.ErrCodeInvalidAmount)
		}
		if d.GreaterThan(MaxAmount) {
			return fv.fail(fmt.Sprintf("%s must not exceed %s", fv.FieldName, MaxAmount.StringFixed(2)), errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return nil
		}
		if utf8.RuneCountInString(s) > max {
			message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
			return fv.fail(message, errors.ErrCodeInvalidDescription)
		}
		return nil
	})
	return fv
}

// OneOfCategories rejects values outside the category enumeration. Empty
// values are left to Required.
func (fv *FieldValidator) OneOfCategories() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var c category.Category
		switch v := value.(type) {
		case category.Category:
			c = v
		case *category.Category:
			if v == nil {
				return nil
			}
			c = *v
		default:
			return nil
		}
		if c != "" && !c.IsValid() {
			return fv.fail(fmt.Sprintf("%s must be one of %v", fv.FieldName, category.All()), errors.ErrCodeInvalidCategory)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MonthFormat() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		m, ok := value.(datetime.Month)
		if !ok || m == "" {
			return nil
		}
		if !m.IsValid() {
			return fv.fail(fmt.Sprintf("%s must be formatted as YYYY-MM", fv.FieldName), errors.ErrCodeInvalidMonth)
		}
		return nil
	})
	return fv
}

// Validate runs every field and reports the first failure of each field.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			err := validator(field.Value)
			if err == nil {
				continue
			}
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: err.Message,
					Code:    string(err.Code),
				})
			}
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}
