package errors

import "fmt"

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(path, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration", operation)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithLocation(SourceLocation{File: path}).
		WithContext("operation", operation)
}

// WrapGenerateError wraps an error raised while generating declarations from item
func WrapGenerateError(stage, item string, cause error) *GenerationError {
	message := fmt.Sprintf("failed to %s %s", stage, item)
	err := &GenerationError{BaseError: Wrap(GenerationErrorCode, message, cause)}
	return err.WithTargetFile(item).WithStage(stage)
}

// WrapOutputError wraps failures delivering generated text to target
func WrapOutputError(target string, cause error) *BaseError {
	message := fmt.Sprintf("failed to write output to %s", target)
	return Wrap(OutputErrorCode, message, cause).
		WithContext("target", target)
}

// FileSystemError creates a file system error
func FileSystemError(operation, path, message string) *BaseError {
	fullMessage := fmt.Sprintf("failed to %s '%s': %s", operation, path, message)
	return New(FileSystemErrorCode, fullMessage).
		WithContext("operation", operation).
		WithContext("path", path)
}

// ConfigurationError creates a configuration error
func ConfigurationError(path, message string) *BaseError {
	return New(ConfigurationErrorCode, message).
		WithLocation(SourceLocation{File: path})
}

// AddToMultiple adds an error to a MultipleErrors, creating it if nil
func AddToMultiple(multiple **MultipleErrors, err CodedError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}

// HasCode reports whether err or anything it wraps carries code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if coded, ok := err.(CodedError); ok && coded.ErrorCode() == code {
			return true
		}
		if multi, ok := err.(*MultipleErrors); ok {
			return multi.HasCode(code)
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
