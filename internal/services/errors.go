package services

import (
	"errors"

	apperrors "github.com/smart-class/classroom-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Assignment specific errors
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrAssignmentNoQuestions = errors.New("assignment must contain at least one question")
	ErrAnswerKeyMissing      = errors.New("question has no correct answer")
	ErrAnswerKeyNotInOptions = errors.New("correct answer must match one of the question options")
	ErrOptionSlotCount       = errors.New("choice question must carry exactly five option slots")

	// Submission specific errors
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted by this student")
	ErrNotTargetedClass   = errors.New("assignment does not target the student's class")

	// Student specific errors
	ErrStudentNotFound  = errors.New("student not found")
	ErrStudentNotActive = errors.New("student is not approved yet")
	ErrUsernameTaken    = errors.New("username already registered")
	ErrCharacterLocked  = errors.New("character is not unlocked at the current reward points")
	ErrInvalidPointKind = errors.New("point kind must be reward or penalty")

	// Class specific errors
	ErrClassNotFound = errors.New("class not found")
	ErrClassExists   = errors.New("class name already exists")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrClassNotFound)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrClassExists)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrAssignmentNoQuestions) ||
		errors.Is(err, ErrAnswerKeyMissing) ||
		errors.Is(err, ErrAnswerKeyNotInOptions) ||
		errors.Is(err, ErrOptionSlotCount) ||
		errors.Is(err, ErrInvalidPointKind) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
