package errors

import (
	"errors"
	"fmt"
)

// Error types for different categories of failures
const (
	// Tokenizer errors
	ErrStructural    = "STRUCTURAL_PARSE_FAILURE"
	ErrDirectiveBody = "DIRECTIVE_BODY_INVALID"

	// Input errors
	ErrInputRead    = "INPUT_READ_ERROR"
	ErrFileNotFound = "FILE_NOT_FOUND"

	// Output errors
	ErrEncode = "ENCODE_ERROR"
	ErrSchema = "SCHEMA_VALIDATION_ERROR"
)

// ScriptError represents a structured error with type, source line and context
type ScriptError struct {
	Type    string
	Line    int // 1-based, 0 when the error is not tied to a line
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *ScriptError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap allows error unwrapping
func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// New creates a new ScriptError
func New(errorType, message string) *ScriptError {
	return &ScriptError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a new ScriptError wrapping an existing error
func Wrap(errorType, message string, cause error) *ScriptError {
	return &ScriptError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// AtLine sets the 1-based source line of the error
func (e *ScriptError) AtLine(line int) *ScriptError {
	e.Line = line
	return e
}

// WithContext adds context information to the error
func (e *ScriptError) WithContext(key string, value interface{}) *ScriptError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *ScriptError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewStructuralError reports a line the grammar could not classify at all
func NewStructuralError(line int, reason string) *ScriptError {
	return New(ErrStructural, reason).AtLine(line)
}

// NewDirectiveError reports a recognized directive whose body is malformed
func NewDirectiveError(line int, tag, text string) *ScriptError {
	return New(ErrDirectiveBody, fmt.Sprintf("invalid @%s directive", tag)).
		AtLine(line).
		WithContext("tag", tag).
		WithContext("text", text)
}

// NewInputError creates an input-related error
func NewInputError(message string, cause error) *ScriptError {
	return Wrap(ErrInputRead, message, cause)
}

// AsScriptError finds the first ScriptError in err's chain
func AsScriptError(err error) (*ScriptError, bool) {
	var scriptErr *ScriptError
	if errors.As(err, &scriptErr) {
		return scriptErr, true
	}
	return nil, false
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errorType string) bool {
	if scriptErr, ok := AsScriptError(err); ok {
		return scriptErr.Type == errorType
	}
	return false
}
