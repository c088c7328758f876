package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Settings errors
	ErrSettingsLoad  ErrorCode = "SETTINGS_LOAD"
	ErrSettingsSave  ErrorCode = "SETTINGS_SAVE"
	ErrSettingsParse ErrorCode = "SETTINGS_PARSE"

	// Pattern (open/close delimiter) errors
	ErrPatternEmpty        ErrorCode = "PATTERN_EMPTY"
	ErrPatternNotOpen      ErrorCode = "PATTERN_NOT_OPEN"
	ErrPatternNotClose     ErrorCode = "PATTERN_NOT_CLOSE"
	ErrPatternWithoutGroup ErrorCode = "PATTERN_WITHOUT_GROUP"
	ErrPatternNeedChar     ErrorCode = "PATTERN_NEED_CHAR"
	ErrPatternInvalid      ErrorCode = "PATTERN_INVALID"

	// Rule errors
	ErrRegexMissing          ErrorCode = "REGEX_MISSING"
	ErrRegexSyntax           ErrorCode = "REGEX_SYNTAX"
	ErrRegexMatchesNewline   ErrorCode = "REGEX_MATCHES_NEWLINE"
	ErrHideMissingDelimiters ErrorCode = "HIDE_MISSING_DELIMITERS"
	ErrClassMissing          ErrorCode = "CLASS_MISSING"

	// Runtime match errors
	ErrRegexConstruct    ErrorCode = "REGEX_CONSTRUCT"
	ErrMatchSpansNewline ErrorCode = "MATCH_SPANS_NEWLINE"
	ErrMarkerExhausted   ErrorCode = "MARKER_EXHAUSTED"

	// Merge/import errors
	ErrMergeInvalid   ErrorCode = "MERGE_INVALID"
	ErrMergeDuplicate ErrorCode = "MERGE_DUPLICATE"
	ErrMergeShape     ErrorCode = "MERGE_SHAPE"
)

var descriptions = map[ErrorCode]string{
	ErrPatternEmpty:          "Pattern is empty",
	ErrPatternNotOpen:        "Pattern doesn't contain 'open:'",
	ErrPatternNotClose:       "Pattern doesn't contain 'close:'",
	ErrPatternWithoutGroup:   "Pattern doesn't contain a group",
	ErrPatternNeedChar:       "Pattern need to contain a character for enclosing",
	ErrPatternInvalid:        "Pattern is invalid",
	ErrRegexMissing:          "Regex is missing",
	ErrRegexSyntax:           "Regex has a syntax error",
	ErrRegexMatchesNewline:   "Regex can match newlines (`\\n`). This can happen in `[^]` groups or with `\\s`",
	ErrHideMissingDelimiters: "Open/close tags are hidden, but the regex does not have any",
	ErrClassMissing:          "Css class is missing",
	ErrMarkerExhausted:       "Text uses every private-use marker character",
}

// Describe returns the user-facing sentence for a code, or the code itself
// when it has no description.
func Describe(code ErrorCode) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return string(code)
}

// IsWarning reports whether the code is surfaced to the user without
// blocking the rule from being applied.
func IsWarning(code ErrorCode) bool {
	return code == ErrRegexMatchesNewline
}

// MarkError represents a structured error with code and details
type MarkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MarkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MarkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MarkError) Is(target error) bool {
	var targetErr *MarkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MarkError with the given code and message
func New(code ErrorCode, message string) *MarkError {
	return &MarkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MarkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MarkError {
	return &MarkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MarkError
func Wrap(err error, code ErrorCode, message string) *MarkError {
	if err == nil {
		return nil
	}
	return &MarkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MarkError {
	if err == nil {
		return nil
	}
	return &MarkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MarkError) WithDetail(key string, value interface{}) *MarkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MarkError) WithDetails(details map[string]interface{}) *MarkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var markErr *MarkError
	if errors.As(err, &markErr) {
		return markErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MarkError
func GetErrorCode(err error) ErrorCode {
	var markErr *MarkError
	if errors.As(err, &markErr) {
		return markErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MarkError
func GetErrorDetails(err error) map[string]interface{} {
	var markErr *MarkError
	if errors.As(err, &markErr) {
		return markErr.Details
	}
	return nil
}
