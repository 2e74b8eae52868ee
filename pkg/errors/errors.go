package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hireflow/hireflow-backend/pkg/i18n"
)

// Standard error types
var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInternal          = errors.New("internal server error")
	ErrValidation        = errors.New("validation error")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("invalid token")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrEmptyUpload       = errors.New("empty upload")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtraction        = errors.New("extraction error")
)

// Error codes returned to API clients
const (
	CodeInvalidFormat     = "INVALID_FORMAT"
	CodeEmptyUpload       = "EMPTY_UPLOAD"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeExtractionError   = "EXTRACTION_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	MessageKey string            `json:"-"` // i18n key for localization
	Params     map[string]string `json:"-"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Localize returns a localized version of the error message
func (e *AppError) Localize(ctx context.Context) string {
	if e.MessageKey == "" {
		return e.Message
	}
	return i18n.TFromContext(ctx, e.MessageKey, e.Params)
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// causeError keeps both the sentinel and the underlying cause reachable
// through errors.Is / errors.As.
type causeError struct {
	sentinel error
	cause    error
}

func (c *causeError) Error() string   { return c.cause.Error() }
func (c *causeError) Unwrap() []error { return []error{c.sentinel, c.cause} }

func withCause(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &causeError{sentinel: sentinel, cause: cause}
}

// Common error constructors

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		MessageKey: "errors.bad_request",
		StatusCode: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Code:       "UNAUTHORIZED",
		Message:    message,
		MessageKey: "errors.unauthorized",
		StatusCode: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Err:        ErrForbidden,
		Code:       "FORBIDDEN",
		Message:    message,
		MessageKey: "errors.forbidden",
		StatusCode: http.StatusForbidden,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       CodeInternalError,
		Message:    message,
		MessageKey: "errors.internal",
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		MessageKey: "errors.validation_failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

func TokenExpired() *AppError {
	return &AppError{
		Err:        ErrTokenExpired,
		Code:       "TOKEN_EXPIRED",
		Message:    "token has expired",
		MessageKey: "errors.token_expired",
		StatusCode: http.StatusUnauthorized,
	}
}

func TokenInvalid() *AppError {
	return &AppError{
		Err:        ErrTokenInvalid,
		Code:       "TOKEN_INVALID",
		Message:    "invalid token",
		MessageKey: "errors.token_invalid",
		StatusCode: http.StatusUnauthorized,
	}
}

// InvalidFormat is returned when the upload's filename is empty or its
// extension is outside the accepted set.
func InvalidFormat(filename string) *AppError {
	return &AppError{
		Err:        ErrInvalidFormat,
		Code:       CodeInvalidFormat,
		Message:    fmt.Sprintf("invalid file format %q: accepted formats are pdf, doc, docx, txt", filename),
		MessageKey: "errors.invalid_format",
		Params:     map[string]string{"filename": filename},
		StatusCode: http.StatusBadRequest,
	}
}

// EmptyUpload is returned for zero-length uploads.
func EmptyUpload() *AppError {
	return &AppError{
		Err:        ErrEmptyUpload,
		Code:       CodeEmptyUpload,
		Message:    "uploaded file is empty",
		MessageKey: "errors.empty_upload",
		StatusCode: http.StatusBadRequest,
	}
}

// UnsupportedFormat is returned by the text extraction layer when no
// decoder is registered for a format.
func UnsupportedFormat(format string) *AppError {
	return &AppError{
		Err:        ErrUnsupportedFormat,
		Code:       CodeUnsupportedFormat,
		Message:    fmt.Sprintf("no text extractor for format %q", format),
		MessageKey: "errors.unsupported_format",
		Params:     map[string]string{"format": format},
		StatusCode: http.StatusBadRequest,
	}
}

// ExtractionFailed is returned when a decoder could not produce text.
// The cause is reported in Details and stays reachable through errors.Is.
func ExtractionFailed(format string, cause error) *AppError {
	e := &AppError{
		Err:        withCause(ErrExtraction, cause),
		Code:       CodeExtractionError,
		Message:    fmt.Sprintf("could not extract text from %s document", format),
		MessageKey: "errors.extraction_failed",
		Params:     map[string]string{"format": format},
		StatusCode: http.StatusUnprocessableEntity,
	}
	if cause != nil {
		e.Details = map[string]string{"cause": cause.Error()}
	}
	return e
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}

// CodeOf returns the AppError code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}
