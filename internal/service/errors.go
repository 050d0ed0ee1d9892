package service

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorType int

const (
	ErrUnsupportedFormat ErrorType = iota
	ErrFileNotFound
	ErrFileRead
	ErrValidation
	ErrStorage
	ErrUnknown
)

// AnalyzerError is the error type surfaced by the service layer. The core
// pipeline itself degrades instead of failing; everything that does fail
// here is a caller-facing condition (bad extension, unreadable file, empty
// input) and carries a type for dispatch.
type AnalyzerError struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func NewError(errorType ErrorType, message string) *AnalyzerError {
	return &AnalyzerError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func NewErrorWithCause(errorType ErrorType, message string, cause error) *AnalyzerError {
	return &AnalyzerError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

func (e *AnalyzerError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", e.Type.String(), e.Message))

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *AnalyzerError) Unwrap() error {
	return e.Cause
}

func (e *AnalyzerError) WithContext(key string, value any) *AnalyzerError {
	e.Context[key] = value
	return e
}

func (t ErrorType) String() string {
	switch t {
	case ErrUnsupportedFormat:
		return "UnsupportedFormat"
	case ErrFileNotFound:
		return "FileNotFound"
	case ErrFileRead:
		return "FileRead"
	case ErrValidation:
		return "Validation"
	case ErrStorage:
		return "Storage"
	default:
		return "Unknown"
	}
}

// Advice returns a user-facing hint for recovering from the error.
func (e *AnalyzerError) Advice() string {
	switch e.Type {
	case ErrUnsupportedFormat:
		return "Please provide a .srt or .ass subtitle file"
	case ErrFileNotFound:
		return "Please check that the file path is correct and the file exists"
	case ErrFileRead:
		return "Please check file permissions and verify the file is not corrupted"
	case ErrValidation:
		return "Please provide non-empty Japanese text"
	case ErrStorage:
		return "Please check that the database path is writable"
	default:
		return "Please review the detailed error information"
	}
}

func IsErrorType(err error, errorType ErrorType) bool {
	var analyzerErr *AnalyzerError
	if errors.As(err, &analyzerErr) {
		return analyzerErr.Type == errorType
	}
	return false
}

func WrapError(err error, errorType ErrorType, message string) *AnalyzerError {
	return NewErrorWithCause(errorType, message, err)
}
