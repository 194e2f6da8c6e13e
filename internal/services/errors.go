package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/assessment-engine/internal/catalog"
	apperrors "github.com/SAP-F-2025/assessment-engine/internal/errors"
	"github.com/SAP-F-2025/assessment-engine/internal/export"
	"github.com/SAP-F-2025/assessment-engine/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Assessment specific errors
	ErrAssessmentNotFound = catalog.ErrNotFound

	// Session specific errors
	ErrSessionNotFound      = errors.New("session not found")
	ErrTransitionNotAllowed = errors.New("transition not allowed in current state")
	ErrResultNotAvailable   = errors.New("session has not been completed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// gateClosed explains why Next or Complete was refused.
func gateClosed(sessionID string, index int) *BusinessRuleError {
	return NewBusinessRuleError("completion_gate",
		"the current question does not allow advancing yet",
		map[string]interface{}{"session_id": sessionID, "current_index": index})
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsBadRequest checks if the answer or placement does not fit the assessment
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, session.ErrWrongKind) ||
		errors.Is(err, session.ErrUnknownQuestion) ||
		errors.Is(err, session.ErrUnknownOption) ||
		errors.Is(err, session.ErrUnknownItem) ||
		errors.Is(err, session.ErrUnknownZone)
}

// IsConflict checks if the session state forbids the operation
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrTransitionNotAllowed) ||
		errors.Is(err, ErrResultNotAvailable) ||
		errors.Is(err, session.ErrNotInProgress) ||
		errors.Is(err, session.ErrSessionClosed) ||
		errors.Is(err, session.ErrEmptyAssessment) ||
		errors.Is(err, export.ErrNoResult)
}
