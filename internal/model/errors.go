package model

import "fmt"

// Validation error codes surfaced as 422 responses.
const (
	CodeInvalidFormat    = "invalid_format"
	CodeMissingField     = "missing_field"
	CodeTypeMismatch     = "type_mismatch"
	CodeFutureTimestamp  = "future_timestamp"
	CodeEndBeforeStart   = "end_before_start"
	CodeDateRangeTooWide = "date_range_too_wide"
	CodeInvalidValue     = "invalid_value"
)

// FieldError is a field-scoped validation failure. It is the only error
// type handlers translate into structured 422 detail; everything else maps
// to an opaque 500.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Field, e.Code, e.Message)
}

func InvalidFormat(field, message string) *FieldError {
	return &FieldError{Field: field, Code: CodeInvalidFormat, Message: message}
}

func MissingField(field string) *FieldError {
	return &FieldError{Field: field, Code: CodeMissingField, Message: fmt.Sprintf("required field %q is missing", field)}
}

func TypeMismatch(field, expected string) *FieldError {
	return &FieldError{Field: field, Code: CodeTypeMismatch, Message: fmt.Sprintf("field %q must be a %s", field, expected)}
}

func FutureTimestamp(field string) *FieldError {
	return &FieldError{Field: field, Code: CodeFutureTimestamp, Message: fmt.Sprintf("%s cannot be in the future", field)}
}

func EndBeforeStart() *FieldError {
	return &FieldError{Field: "end_date", Code: CodeEndBeforeStart, Message: "end date must be after start date"}
}

func DateRangeTooWide() *FieldError {
	return &FieldError{Field: "end_date", Code: CodeDateRangeTooWide, Message: "date range cannot exceed 30 days"}
}

func InvalidValue(field, message string) *FieldError {
	return &FieldError{Field: field, Code: CodeInvalidValue, Message: message}
}
