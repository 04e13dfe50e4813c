package errors

import "fmt"

// ValidationError represents an invalid configuration or request field
type ValidationError struct {
	*BaseError
	Field      string      // field that failed validation
	Value      interface{} // the value that failed validation
	Constraint string      // the validation constraint that failed
}

// NewValidationError creates a validation error for field holding value
func NewValidationError(field string, value interface{}, constraint string) *ValidationError {
	message := fmt.Sprintf("invalid value %v for '%s': %s", value, field, constraint)

	return &ValidationError{
		BaseError:  New(ValidationErrorCode, message),
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

// WithLocation sets the location, usually the config file path
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// GenerationError represents a failure while producing declarations for a run
type GenerationError struct {
	*BaseError
	TargetFile string // source file being processed
	Stage      string // read, parse or render
}

// WithTargetFile sets the file being processed
func (e *GenerationError) WithTargetFile(targetFile string) *GenerationError {
	e.TargetFile = targetFile
	e.BaseError.WithContext("target_file", targetFile)
	return e
}

// WithStage sets the pipeline stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	e.BaseError.WithContext("stage", stage)
	return e
}
