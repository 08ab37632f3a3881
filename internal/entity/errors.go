package entity

import (
	"errors"
	"strings"
)

// Domain errors
var (
	// Pipeline errors
	ErrValidation        = errors.New("validation failed")
	ErrGenerationService = errors.New("generation service unavailable")
	ErrInvalidResult     = errors.New("generation service returned an invalid result")

	// Document errors
	ErrDocumentNotFound  = errors.New("document not found")
	ErrExtractionService = errors.New("text extraction failed")
	ErrEmptyDocument     = errors.New("document contains no extractable text")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Request errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ValidationError collects every violated input constraint of a request
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
