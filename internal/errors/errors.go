package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the kind of failure raised by the signal core
type ErrorCategory string

const (
	// Invalid constructor parameter: raised when a component is built, never later
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	// Input empty or shorter than the minimum an indicator needs
	ErrorCategoryInsufficientData ErrorCategory = "INSUFFICIENT_DATA"
	// Zero stop distance, non-positive size, non-finite results and similar
	ErrorCategoryDegenerateInput ErrorCategory = "DEGENERATE_INPUT"
)

// Sentinels for errors.Is matching against a SignalError category
var (
	ErrConfiguration    = stderrors.New("configuration error")
	ErrInsufficientData = stderrors.New("insufficient data")
	ErrDegenerateInput  = stderrors.New("degenerate input")
)

// SignalError is a categorised error with the component and operation that raised it.
// None of the categories is retryable: every failure is local and synchronous.
type SignalError struct {
	Category  ErrorCategory
	Component string
	Operation string
	Message   string
	Context   map[string]interface{}
}

// Error implements the error interface
func (e *SignalError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Is matches the category sentinels
func (e *SignalError) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Category == ErrorCategoryConfiguration
	case ErrInsufficientData:
		return e.Category == ErrorCategoryInsufficientData
	case ErrDegenerateInput:
		return e.Category == ErrorCategoryDegenerateInput
	}
	return false
}

// WithContext adds context information to the error
func (e *SignalError) WithContext(key string, value interface{}) *SignalError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewSignalError creates a new categorised error
func NewSignalError(category ErrorCategory, component, operation, message string) *SignalError {
	return &SignalError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

func NewConfigurationError(component, operation, message string) *SignalError {
	return NewSignalError(ErrorCategoryConfiguration, component, operation, message)
}

func NewDegenerateInputError(component, operation, message string) *SignalError {
	return NewSignalError(ErrorCategoryDegenerateInput, component, operation, message)
}

// NewInsufficientDataError reports how many points were supplied and how many are needed.
func NewInsufficientDataError(component string, available, required int) *SignalError {
	return NewSignalError(ErrorCategoryInsufficientData, component, "calculate",
		fmt.Sprintf("have %d data points, need %d", available, required)).
		WithContext("available", available).
		WithContext("required", required)
}

func IsConfiguration(err error) bool    { return stderrors.Is(err, ErrConfiguration) }
func IsInsufficientData(err error) bool { return stderrors.Is(err, ErrInsufficientData) }
func IsDegenerateInput(err error) bool  { return stderrors.Is(err, ErrDegenerateInput) }

// CategoryOf returns the category of a SignalError anywhere in err's chain, or "" if none.
func CategoryOf(err error) ErrorCategory {
	var se *SignalError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return ""
}
