package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repositories when an identifier does not
// resolve. Id-based reads surface it as 404; creation-time lookups fold it
// into a field-level validation error instead.
var ErrNotFound = errors.New("not found")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more field-level problems. Structural
// checks collect every violation before returning.
type ValidationError struct {
	Fields []FieldError `json:"details"`
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// BusinessRuleError rejects a well-formed request because of domain state:
// an inactive launch, not enough seats left. There is no single offending
// field.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func NewBusinessRuleError(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// ConsistencyError means stored data contradicts itself, e.g. a launch
// whose rocket is gone. Callers cannot recover from it; it maps to 500.
type ConsistencyError struct {
	Message string
	Err     error
}

func (e *ConsistencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

func NewConsistencyError(message string, err error) *ConsistencyError {
	return &ConsistencyError{Message: message, Err: err}
}
