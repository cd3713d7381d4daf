package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable indicates that a remote resource answered with a transient failure.
	ErrUnavailable = errors.New("resource unavailable")
)

// Type classifies errors into high-level buckets.
type Type int

const (
	// TypeServer represents failures outside the caller's control.
	TypeServer Type = iota
	// TypeBusiness represents rule violations that are not input mistakes.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier for an error condition.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates data that could not be decoded.
	CodeInvalidFormat
	// CodeInvalidInput indicates invalid arguments.
	CodeInvalidInput
	// CodeNotFound indicates a missing resource or member.
	CodeNotFound
	// CodeTimeout indicates a timeout.
	CodeTimeout
	// CodeUnavailable indicates a transient remote failure worth retrying.
	CodeUnavailable
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	case CodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the toolkit.
//
// It can wrap an underlying error while also carrying a message, a high-level
// type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	}

	if e.errType == TypeValidation {
		return "Validation violation"
	}

	return "Internal error"
}

// String returns a verbose representation of the error for logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Retryable reports whether the condition is transient.
func (e *Error) Retryable() bool {
	return e.code == CodeUnavailable || e.code == CodeTimeout
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps an unexpected failure.
func NewServer(err error) error {
	return new(err, "", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error with a message and optional cause.
func NewInvalidInput(msg string, err error) error {
	return new(err, msg, TypeValidation, CodeInvalidInput)
}

// NewInvalidFormat creates a validation error for undecodable data.
func NewInvalidFormat(msg string, err error) error {
	return new(err, msg, TypeValidation, CodeInvalidFormat)
}

// NewNotFound reports a missing resource named by msg.
func NewNotFound(msg string) error {
	return new(ErrNotFound, msg, TypeBusiness, CodeNotFound)
}

// NewUnavailable reports a transient failure of a remote resource.
func NewUnavailable(msg string, err error) error {
	if err == nil {
		err = ErrUnavailable
	}
	return new(err, msg, TypeServer, CodeUnavailable)
}

// NewTimeout reports an operation that ran out of time. It is retryable.
func NewTimeout(msg string, err error) error {
	return new(err, msg, TypeServer, CodeTimeout)
}

// FromHTTPStatus maps a non-2xx response status to an error. It returns nil
// for 2xx statuses.
func FromHTTPStatus(status int, msg string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return NewNotFound(msg)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return NewTimeout(msg, nil)
	case status == http.StatusTooManyRequests || status >= 500:
		return NewUnavailable(msg, fmt.Errorf("%w: status %d", ErrUnavailable, status))
	default:
		return new(fmt.Errorf("status %d", status), msg, TypeBusiness, CodeInvalidInput)
	}
}

// IsRetryable reports whether err carries a transient *Error anywhere in its chain.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeInternal
}
