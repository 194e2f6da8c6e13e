package errors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if validatorErr, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validatorErr {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	return messageFor(err.Tag(), err.Param())
}

// NewRuleViolation builds a business-rule error using the standard message
// for rule.
func NewRuleViolation(field, rule string, value interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Message: messageFor(rule, ""),
		Value:   value,
		Rule:    rule,
	}
}

func messageFor(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "len":
		return fmt.Sprintf("must be exactly %s characters", param)
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "numeric":
		return "must be a number"
	case "alpha":
		return "must contain only letters"
	case "alphanum":
		return "must contain only letters and numbers"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)

	// Custom validators
	case "assessment_kind":
		return "must be a valid assessment kind (dropdown_selection, drag_drop, essay, short_answer, numeric_calculation, hotspot_quiz, scenario_simulation, proctored_exam)"

	// Business rule validators
	case "kind_payload":
		return "must match the assessment kind"
	case "unique_id":
		return "must be unique within the assessment"
	case "unique_text":
		return "must be unique among the drag-and-drop items"
	case "option_member":
		return "must be one of the question options"
	case "zone_member":
		return "must reference a defined drop zone"
	case "hotspot_member":
		return "must reference a defined hotspot"
	case "word_range":
		return "must not be below the minimum word count"
	case "answer_payload":
		return "must supply exactly one of option, text, value or toggle"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", tag)
	}
}
